// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"errors"
	"testing"
	"time"
)

func TestMergeReturnsNewConfig(t *testing.T) {
	t.Parallel()

	base := Config{Provider: ProviderOpenAI, OpenAIAPIKey: "sk-test", Timeout: time.Minute}
	provider := ProviderOpenRouter
	model := "meta-llama/llama-4-maverick"

	merged := base.Merge(Update{Provider: &provider, Model: &model})

	if base.Provider != ProviderOpenAI || base.Model != "" {
		t.Fatalf("expected receiver to be unchanged, got %+v", base)
	}

	if merged.Provider != ProviderOpenRouter || merged.Model != model {
		t.Fatalf("expected update to apply, got %+v", merged)
	}

	if merged.OpenAIAPIKey != "sk-test" || merged.Timeout != time.Minute {
		t.Fatalf("expected untouched fields to carry over, got %+v", merged)
	}
}

func TestEffectiveModelDefaults(t *testing.T) {
	t.Parallel()

	tests := map[Provider]string{
		ProviderOpenAI:     "gpt-4o",
		ProviderOpenRouter: "openai/gpt-4o",
		ProviderAnthropic:  "claude-3-5-sonnet-latest",
		ProviderGemini:     "gemini-2.5-flash",
		ProviderOllama:     "",
	}

	for provider, want := range tests {
		if got := (Config{Provider: provider}).EffectiveModel(); got != want {
			t.Fatalf("%s: expected %q, got %q", provider, want, got)
		}
	}

	if got := (Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}).EffectiveModel(); got != "gpt-4o-mini" {
		t.Fatalf("expected explicit model, got %q", got)
	}
}

func TestEffectiveTimeout(t *testing.T) {
	t.Parallel()

	if got := (Config{}).EffectiveTimeout(); got != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", got)
	}

	if got := (Config{Timeout: 5 * time.Second}).EffectiveTimeout(); got != 5*time.Second {
		t.Fatalf("expected 5s, got %s", got)
	}
}

func TestEffectiveMaxTokens(t *testing.T) {
	t.Parallel()

	if got := (Config{}).EffectiveMaxTokens(analysisMaxTokens); got != analysisMaxTokens {
		t.Fatalf("expected default %d, got %d", analysisMaxTokens, got)
	}

	if got := (Config{MaxTokens: 300}).EffectiveMaxTokens(messageMaxTokens); got != 300 {
		t.Fatalf("expected 300, got %d", got)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	if err := (Config{Provider: ProviderOllama, OllamaURL: "http://localhost:11434"}).Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	if err := (Config{Timeout: -time.Second}).Validate(); !errors.Is(err, errInvalidProviderTimeout) {
		t.Fatalf("expected timeout error, got %v", err)
	}

	if err := (Config{OllamaURL: "not a url"}).Validate(); err == nil {
		t.Fatal("expected invalid URL to be rejected")
	}
}

func TestParseProvider(t *testing.T) {
	t.Parallel()

	tests := map[string]Provider{
		"OpenAI":     ProviderOpenAI,
		" gemini ":   ProviderGemini,
		"":           ProviderMock,
		"local":      ProviderMock,
		"somethingx": Provider("somethingx"),
	}

	for in, want := range tests {
		got := ParseProvider(in)
		if got != want {
			t.Fatalf("ParseProvider(%q): expected %q, got %q", in, want, got)
		}
	}

	if ParseProvider("somethingx").Supported() || ProviderMock.Supported() {
		t.Fatal("expected unknown and mock providers to be unsupported")
	}
}

func TestAPIKeyPerProvider(t *testing.T) {
	t.Parallel()

	cfg := Config{
		OpenAIAPIKey:     "a",
		OpenRouterAPIKey: "b",
		AnthropicAPIKey:  "c",
		GeminiAPIKey:     "d",
		OllamaURL:        "http://ollama",
	}

	tests := map[Provider]string{
		ProviderOpenAI:     "a",
		ProviderOpenRouter: "b",
		ProviderAnthropic:  "c",
		ProviderGemini:     "d",
		ProviderOllama:     "http://ollama",
		ProviderMock:       "",
	}

	for provider, want := range tests {
		cfg.Provider = provider
		if got := cfg.APIKey(); got != want {
			t.Fatalf("%s: expected %q, got %q", provider, want, got)
		}
	}
}

func TestAvailableModels(t *testing.T) {
	t.Parallel()

	models := AvailableModels()
	if len(models) != 4 {
		t.Fatalf("expected 4 models, got %d", len(models))
	}

	if models[0].ID != "openai/gpt-4o" || models[3].Name != "2.5-flash" {
		t.Fatalf("unexpected model list: %+v", models)
	}
}
