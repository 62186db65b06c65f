// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/lab"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func runCLI(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer

	app := &cli.Command{
		Name:     "lablens",
		Writer:   &out,
		Commands: []*cli.Command{newAnalyzeCommand(), newModelsCommand()},
	}

	if err := app.Run(context.Background(), append([]string{"lablens"}, args...)); err != nil {
		t.Fatalf("run %v failed: %v", args, err)
	}

	return out.String()
}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}

	return path
}

//nolint:paralleltest // The log level is global.
func TestAnalyzeCommandWithMockProvider(t *testing.T) {
	path := writeTestFile(t, "labs.png", pngHeader)
	report := filepath.Join(t.TempDir(), "report.html")

	out := runCLI(t, "analyze", "--provider", "mock", "--messages", "--out", report, path)

	for _, want := range []string{lab.MockLabType, "source: fallback (unsupported_provider)", "Total Cholesterol", "Patient message"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	html, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("expected report to be written: %v", err)
	}

	if !strings.Contains(string(html), "<h2>Staff message</h2>") {
		t.Fatalf("unexpected report: %s", html)
	}
}

//nolint:paralleltest // The log level is global.
func TestAnalyzeCommandJSON(t *testing.T) {
	path := writeTestFile(t, "notes.txt", []byte("glucose 105"))

	out := runCLI(t, "analyze", "--provider", "openai", "--openai-api-key", "sk-test", "--json", path)

	var got struct {
		Analysis struct {
			Source         string `json:"source"`
			FallbackReason string `json:"fallbackReason"`
		} `json:"analysis"`
		Trends []lab.TestTrend `json:"trends"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}

	if got.Analysis.Source != "fallback" || got.Analysis.FallbackReason != "unsupported_document" || len(got.Trends) != 4 {
		t.Fatalf("unexpected report: %+v", got)
	}
}

//nolint:paralleltest // The log level is global.
func TestModelsCommand(t *testing.T) {
	out := runCLI(t, "models")

	if !strings.Contains(out, "openai/gpt-4o-mini") {
		t.Fatalf("expected model list, got %q", out)
	}
}

func TestPlainText(t *testing.T) {
	t.Parallel()

	got := plainText("<p>Dear patient,</p><p>LDL &lt;130 <strong>ok</strong></p>")
	if got != "Dear patient,\nLDL <130 ok" {
		t.Fatalf("unexpected plain text: %q", got)
	}
}
