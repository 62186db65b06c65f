// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/analyzer"
)

func parseAnalyzerConfig(t *testing.T, args ...string) (analyzer.Config, error) {
	t.Helper()

	var (
		cfg    analyzer.Config
		cfgErr error
	)

	app := &cli.Command{
		Name:  "lablens",
		Flags: analyzerFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			cfg, cfgErr = analyzerConfig(cmd)
			return nil
		},
	}

	if err := app.Run(context.Background(), append([]string{"lablens"}, args...)); err != nil {
		t.Fatalf("run %v failed: %v", args, err)
	}

	return cfg, cfgErr
}

func TestAnalyzerConfigMaxTokens(t *testing.T) {
	cfg, err := parseAnalyzerConfig(t, "--provider", "mock", "--max-tokens", "1500")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.MaxTokens != 1500 || cfg.EffectiveMaxTokens(800) != 1500 {
		t.Fatalf("expected max tokens 1500, got %d", cfg.MaxTokens)
	}

	if _, err := parseAnalyzerConfig(t, "--provider", "mock", "--max-tokens=-1"); err == nil {
		t.Fatal("expected negative max tokens to be rejected")
	}
}

func TestAnalyzerConfigRejectsUnknownProvider(t *testing.T) {
	if _, err := parseAnalyzerConfig(t, "--provider", "nope"); err != errUnknownProvider {
		t.Fatalf("expected errUnknownProvider, got %v", err)
	}
}
