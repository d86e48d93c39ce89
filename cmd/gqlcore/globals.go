// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"github.com/kraklabs/graphqlcore/internal/ui"
)

// GlobalFlags holds the flags every gqlcore subcommand shares, parsed
// once in main() before the subcommand's own flag set runs.
type GlobalFlags struct {
	// ConfigPath is the path to gqlcore.yaml (default: ./gqlcore.yaml).
	ConfigPath string

	// ProjectFilter restricts a run to one named project; empty means
	// every project declared in the config.
	ProjectFilter string

	// Format selects the diagnostic rendering: "human", "json", or "github".
	Format string

	// Quiet suppresses progress bars and informational messages.
	Quiet bool

	// NoProgress disables progress bars without silencing other output.
	NoProgress bool

	// ColorFlag/ColorFlagSet capture --color/--no-color; ResolveColorMode
	// needs to distinguish "flag not passed" from "flag passed false".
	ColorFlag    bool
	ColorFlagSet bool

	// MetricsAddr, when non-empty, serves the first loaded project's engine
	// metrics at this address for the duration of the run.
	MetricsAddr string
}

// JSON reports whether diagnostics should be rendered as JSON, the
// legacy shorthand older helpers (errors.FatalError) still take.
func (g GlobalFlags) JSON() bool {
	return g.Format == "json"
}

// NoColor resolves whether color output should be disabled for this
// invocation, combining the --color/--no-color flags with the
// environment and a TTY check.
func (g GlobalFlags) NoColor() bool {
	return ui.ResolveColorMode(g.ColorFlag, g.ColorFlagSet, ui.StderrIsTTY())
}

// progressEnabled reports whether progress bars should render: never
// under --quiet/--no-progress/--format=json, and never off a TTY.
func (g GlobalFlags) progressEnabled() bool {
	if g.Quiet || g.NoProgress || g.Format == "json" {
		return false
	}
	return isTerminalStderr()
}

func isTerminalStderr() bool {
	return ui.StderrIsTTY()
}
