// Copyright 2026 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/kraklabs/graphqlcore/internal/output"
	"github.com/kraklabs/graphqlcore/internal/ui"
	"github.com/kraklabs/graphqlcore/pkg/diag"
)

// WireDiagnostic is one diagnostic in the CLI's human/JSON wire format:
// 1-indexed line/column, unlike the 0-indexed positions used internally
// and over LSP.
type WireDiagnostic struct {
	File     string       `json:"file"`
	Severity string       `json:"severity"`
	Source   string       `json:"source"`
	Rule     string       `json:"rule,omitempty"`
	Message  string       `json:"message"`
	Location WireLocation `json:"location"`
}

// WireLocation is a 1-indexed start/end line/column span.
type WireLocation struct {
	Start WirePosition `json:"start"`
	End   WirePosition `json:"end"`
}

// WirePosition is a 1-indexed (line, column) pair.
type WirePosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// toWire converts one internal diagnostic, attributed to file uri, into
// the CLI's 1-indexed wire shape.
func toWire(uri string, d diag.Diagnostic) WireDiagnostic {
	return WireDiagnostic{
		File:     uri,
		Severity: d.Severity.String(),
		Source:   d.Source,
		Rule:     d.Rule,
		Message:  d.Message,
		Location: WireLocation{
			Start: WirePosition{Line: d.Range.Start.Line + 1, Column: d.Range.Start.Character + 1},
			End:   WirePosition{Line: d.Range.End.Line + 1, Column: d.Range.End.Character + 1},
		},
	}
}

// collectWire converts a URI-keyed diagnostic map into a sorted
// []WireDiagnostic, sorted by file then by start position, so output is
// deterministic across runs.
func collectWire(byURI map[string][]diag.Diagnostic) []WireDiagnostic {
	var out []WireDiagnostic
	for uri, ds := range byURI {
		for _, d := range ds {
			out = append(out, toWire(uri, d))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Location.Start.Line != out[j].Location.Start.Line {
			return out[i].Location.Start.Line < out[j].Location.Start.Line
		}
		return out[i].Location.Start.Column < out[j].Location.Start.Column
	})
	return out
}

// countBySeverity tallies how many wire diagnostics have each severity.
func countBySeverity(ds []WireDiagnostic) (errs, warns int) {
	for _, d := range ds {
		switch d.Severity {
		case "error":
			errs++
		case "warning":
			warns++
		}
	}
	return
}

// RenderReport writes ds to w in the format named by format
// ("human", "json", or "github").
func RenderReport(w io.Writer, ds []WireDiagnostic, format string, noColor bool) error {
	switch format {
	case "json":
		return output.JSONTo(w, ds)
	case "github":
		return renderGitHub(w, ds)
	default:
		return renderHuman(w, ds, noColor)
	}
}

func renderGitHub(w io.Writer, ds []WireDiagnostic) error {
	for _, d := range ds {
		level := "notice"
		switch d.Severity {
		case "error":
			level = "error"
		case "warning":
			level = "warning"
		}
		if err := output.GitHubAnnotation(w, output.Annotation{
			Level:   level,
			File:    d.File,
			Line:    d.Location.Start.Line,
			Col:     d.Location.Start.Column,
			Message: d.Message,
			Rule:    d.Rule,
		}); err != nil {
			return err
		}
	}
	return nil
}

func renderHuman(w io.Writer, ds []WireDiagnostic, noColor bool) error {
	if len(ds) == 0 {
		fmt.Fprintln(w, ui.Green.Sprint("✓ No issues found"))
		return nil
	}

	for _, d := range ds {
		loc := fmt.Sprintf("%s:%d:%d", d.File, d.Location.Start.Line, d.Location.Start.Column)
		sev := severityLabel(d.Severity, noColor)
		rule := ""
		if d.Rule != "" {
			rule = " " + ui.DimText("["+d.Rule+"]")
		}
		fmt.Fprintf(w, "%s  %s  %s%s\n", loc, sev, d.Message, rule)
	}

	errs, warns := countBySeverity(ds)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%d error(s), %d warning(s)\n", errs, warns)
	return nil
}

func severityLabel(sev string, noColor bool) string {
	if noColor {
		return sev
	}
	switch sev {
	case "error":
		return ui.Red.Sprint(sev)
	case "warning":
		return ui.Yellow.Sprint(sev)
	default:
		return ui.Cyan.Sprint(sev)
	}
}
