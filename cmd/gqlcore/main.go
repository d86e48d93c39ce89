// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

// Package main implements gqlcore, a CLI for validating and linting
// GraphQL schemas and documents against a project's gqlcore.yaml.
//
// Usage:
//
//	gqlcore validate              Validate executable documents against the schema
//	gqlcore lint                  Run lint rules over the project
//	gqlcore check                 Validate and lint in one pass
//	gqlcore stats                 Report per-project file/type/operation counts
//	gqlcore coverage              Report schema field coverage
//	gqlcore complexity            Report operation selection-depth/field counts
//	gqlcore fragments             Report fragment usage
//	gqlcore deprecations          Report deprecated-field usage project-wide
package main

import (
	"fmt"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/kraklabs/graphqlcore/internal/errors"
	"github.com/kraklabs/graphqlcore/internal/ui"
)

func main() {
	fs := flag.NewFlagSet("gqlcore", flag.ExitOnError)
	fs.SetInterspersed(false)

	configPath := fs.String("config", "", "Path to gqlcore.yaml (default: ./gqlcore.yaml)")
	projectFilter := fs.String("project", "", "Restrict the run to one named project")
	format := fs.String("format", "human", "Output format: human, json, or github")
	quiet := fs.Bool("quiet", false, "Suppress progress bars and informational messages")
	noProgress := fs.Bool("no-progress", false, "Disable progress bars without silencing other output")
	color := fs.Bool("color", false, "Force colored output")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	metricsAddr := fs.String("metrics-addr", "", "Serve the first loaded project's Prometheus metrics at this address for the duration of the run")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `gqlcore - GraphQL schema/document analysis CLI

Usage:
  gqlcore [global options] <command> [command options]

Commands:
  validate      Validate executable documents against the merged schema
  lint          Run lint rules over the project
  check         Validate and lint in one pass
  stats         Report per-project file/type/operation counts
  coverage      Report the percentage of schema fields touched by documents
  complexity    Report operation selection-depth/field counts
  fragments     Report fragment usage across the project
  deprecations  Report deprecated-field usage project-wide
  schema        Schema-related subcommands (download)
  mcp           Start as a Model Context Protocol server (not yet implemented)
  lsp           Start as a Language Server Protocol server (not yet implemented)

Global Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Environment Variables:
  NO_COLOR        Disable colored output when set to any value
  CLICOLOR_FORCE  Force colored output even when stderr isn't a TTY
  CLICOLOR        Disable colored output when set to "0"
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(errors.ExitInput)
	}

	globals := GlobalFlags{
		ConfigPath:    *configPath,
		ProjectFilter: *projectFilter,
		Format:        *format,
		Quiet:         *quiet,
		NoProgress:    *noProgress,
		MetricsAddr:   *metricsAddr,
	}
	if fs.Changed("no-color") {
		globals.ColorFlag, globals.ColorFlagSet = false, true
	} else if fs.Changed("color") {
		globals.ColorFlag, globals.ColorFlagSet = *color, true
	}
	ui.InitColors(globals.NoColor())

	args := fs.Args()
	if len(args) == 0 {
		fs.Usage()
		os.Exit(errors.ExitInput)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: levelFor(globals.Quiet),
	}))

	cfgPath := ResolveConfigPath(globals.ConfigPath)
	root := configDir(cfgPath)

	command, cmdArgs := args[0], args[1:]

	if command == "mcp" {
		errors.FatalError(runMCP(root, nil, globals, logger), globals.JSON())
		return
	}
	if command == "lsp" {
		errors.FatalError(runLSP(root, nil, globals, logger), globals.JSON())
		return
	}
	if command == "schema" {
		errors.FatalError(dispatchSchema(cmdArgs, globals, logger), globals.JSON())
		return
	}

	fc, err := LoadFileConfig(cfgPath)
	if err != nil {
		errors.FatalError(err, globals.JSON())
		return
	}

	var runErr error
	switch command {
	case "validate":
		runErr = runValidate(root, fc, globals, logger, os.Stdout)
	case "lint":
		runErr = runLint(root, fc, globals, logger, os.Stdout)
	case "check":
		runErr = runCheck(root, fc, globals, logger, os.Stdout)
	case "stats":
		runErr = runStats(root, fc, globals, logger, os.Stdout)
	case "coverage":
		runErr = runCoverage(root, fc, globals, logger, os.Stdout)
	case "complexity":
		runErr = runComplexity(root, fc, globals, logger, os.Stdout)
	case "fragments":
		runErr = runFragments(root, fc, globals, logger, os.Stdout)
	case "deprecations":
		runErr = runDeprecations(root, fc, globals, logger, os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		fs.Usage()
		os.Exit(errors.ExitInput)
	}

	errors.FatalError(runErr, globals.JSON())
}

func levelFor(quiet bool) slog.Level {
	if quiet {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

// dispatchSchema handles the `gqlcore schema <subcommand>` group.
func dispatchSchema(args []string, globals GlobalFlags, logger *slog.Logger) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	endpoint := fs.String("endpoint", "", "GraphQL endpoint URL to introspect")
	out := fs.String("out", "schema.graphql", "Output SDL file path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	sub := fs.Arg(0)
	if sub != "download" {
		return errors.NewInputError(
			fmt.Sprintf("Unknown schema subcommand %q", sub),
			"",
			"Use 'gqlcore schema download --endpoint <url>'",
		)
	}
	return runSchemaDownload(*endpoint, *out, globals, logger)
}
