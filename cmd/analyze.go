/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/analyzer"
	"github.com/lablens/lablens/compose"
	"github.com/lablens/lablens/lab"
	"github.com/lablens/lablens/logging"
)

var CmdAnalyze = newAnalyzeCommand()

func newAnalyzeCommand() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "Analyze a lab report image or PDF",
		ArgsUsage: "<file>",
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:  "messages",
				Usage: "also generate the patient and staff messages",
			},
			&cli.StringFlag{
				Name:  "out",
				Usage: "write an HTML report to this path",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "print the result as JSON",
			},
		}, analyzerFlags()...),
		Action: analyzeFile,
	}
}

var stripTags = bluemonday.StrictPolicy()

// report is everything one CLI run produced.
type report struct {
	File     string                   `json:"file"`
	Analysis analyzer.AnalysisOutcome `json:"analysis"`
	Trends   []lab.TestTrend          `json:"trends"`
	Severity compose.Severity         `json:"severity"`
	Patient  *analyzer.MessageOutcome `json:"patientMessage,omitempty"`
	Staff    *analyzer.MessageOutcome `json:"staffMessage,omitempty"`
}

func analyzeFile(ctx context.Context, cmd *cli.Command) error {
	if err := logging.SetLevel(cmd.String("log-level")); err != nil {
		return err
	}

	path := cmd.Args().First()
	if path == "" {
		return errFileRequired
	}

	cfg, err := analyzerConfig(cmd)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	// Unsupported files still run so the outcome carries the fallback reason.
	doc, err := analyzer.LoadDocument(filepath.Base(path), data)
	if err != nil {
		cliLogger.Warn("Document cannot be analyzed", "file", path, "error", err)
	}

	a := analyzer.New()

	r := report{File: path}
	r.Analysis = a.Analyze(ctx, cfg, doc)
	r.Trends = lab.Compare(r.Analysis.Panel)
	r.Severity = compose.Classify(r.Analysis.Panel)

	wantMessages := cmd.Bool("messages") || cmd.String("out") != ""
	if wantMessages {
		patient := a.PatientMessage(ctx, cfg, r.Analysis.Panel)
		staff := a.StaffMessage(ctx, cfg, r.Analysis.Panel)
		r.Patient = &patient
		r.Staff = &staff
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, []byte(reportHTML(r)), 0o600); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}

		cliLogger.Info("Wrote report", "path", out)
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(cmd.Root().Writer)
		enc.SetIndent("", "  ")

		return enc.Encode(r)
	}

	printReport(cmd.Root().Writer, r, cmd.Bool("messages"))

	return nil
}

func printReport(w io.Writer, r report, withMessages bool) {
	out := r.Analysis

	fmt.Fprintf(w, "%s\n", out.Panel.LabType)
	fmt.Fprintf(w, "source: %s", out.Source)

	if out.Degraded() {
		fmt.Fprintf(w, " (%s)", out.FallbackReason)
	}

	fmt.Fprintf(w, "  provider: %s  model: %s  took: %s\n", out.Provider, out.Model, out.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "severity: %s\n\n", r.Severity)

	if cur, ok := out.Panel.Current(); ok {
		for _, res := range cur.Results {
			line := fmt.Sprintf("  %-22s %10s %-8s %-8s ref %s",
				lab.DisplayName(res.Name), formatValue(res.Value), res.Unit, res.Status, res.Reference)

			if trend, ok := lab.TrendFor(out.Panel, res.Name); ok {
				line += fmt.Sprintf("  %s %s", trend.Symbol, trend.Change)
			}

			fmt.Fprintln(w, line)
		}
	}

	if withMessages && r.Patient != nil && r.Staff != nil {
		fmt.Fprintf(w, "\nPatient message (%s):\n%s\n", r.Patient.Source, plainText(r.Patient.HTML))
		fmt.Fprintf(w, "\nStaff message (%s):\n%s\n", r.Staff.Source, plainText(r.Staff.HTML))
	}
}

func formatValue(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}

// plainText turns the message HTML into readable terminal text.
func plainText(s string) string {
	replacer := strings.NewReplacer("</p>", "\n", "<br>", "\n", "<br/>", "\n", "</li>", "\n", "<li>", "- ")

	return strings.TrimSpace(html.UnescapeString(stripTags.Sanitize(replacer.Replace(s))))
}

func reportHTML(r report) string {
	var sb strings.Builder

	sb.WriteString("<!DOCTYPE html>\n<html lang=\"en\"><head><meta charset=\"utf-8\"><title>LabLens report</title></head><body>\n")
	sb.WriteString("<h1>LabLens report</h1>\n")
	sb.WriteString("<p>" + html.EscapeString(filepath.Base(r.File)) + " &middot; " + html.EscapeString(string(r.Analysis.Source)))

	if r.Analysis.Degraded() {
		sb.WriteString(" (" + html.EscapeString(string(r.Analysis.FallbackReason)) + ")")
	}

	sb.WriteString("</p>\n<section class=\"results\">" + compose.ResultsHTML(r.Analysis.Panel) + "</section>\n")

	if r.Patient != nil {
		sb.WriteString("<h2>Patient message</h2>\n<section>" + r.Patient.HTML + "</section>\n")
	}

	if r.Staff != nil {
		sb.WriteString("<h2>Staff message</h2>\n<section>" + r.Staff.HTML + "</section>\n")
	}

	sb.WriteString("</body></html>\n")

	return sb.String()
}
