/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Provider names an LLM backend.
type Provider string

const (
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderAnthropic  Provider = "anthropic"
	ProviderGemini     Provider = "gemini"
	ProviderOllama     Provider = "ollama"
	ProviderMock       Provider = "mock"
)

// DefaultTimeout bounds every provider call.
const DefaultTimeout = 120 * time.Second

const (
	analysisMaxTokens  = 1000
	messageMaxTokens   = 800
	messageTemperature = 0.7
	openRouterReferer  = "https://github.com/fizt656/LabLens"
	openRouterTitle    = "LabLens"
	openRouterBaseURL  = "https://openrouter.ai/api/v1"
	defaultOpenAIModel = "gpt-4o"
	defaultRouterModel = "openai/gpt-4o"
	defaultClaudeModel = "claude-3-5-sonnet-latest"
	defaultGeminiModel = "gemini-2.5-flash"
)

// Supported reports whether p has a model backend.
func (p Provider) Supported() bool {
	switch p {
	case ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic, ProviderGemini, ProviderOllama:
		return true
	}

	return false
}

// ParseProvider normalizes a provider name. Unknown names are kept so they
// can be reported, and fall back to mock data at call time.
func ParseProvider(name string) Provider {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "local" {
		return ProviderMock
	}

	return Provider(name)
}

// Model is an entry in the selectable model list.
type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AvailableModels returns the vision-capable OpenRouter models offered in the
// settings UI.
func AvailableModels() []Model {
	return []Model{
		{ID: "openai/gpt-4o", Name: "4o"},
		{ID: "openai/gpt-4o-mini", Name: "4o-mini"},
		{ID: "meta-llama/llama-4-maverick", Name: "maverick"},
		{ID: "google/gemini-2.5-flash", Name: "2.5-flash"},
	}
}

// Config selects a provider and carries its credentials. It is passed by
// value to every call.
type Config struct {
	Provider         Provider      `json:"provider"`
	Model            string        `json:"model"`
	OpenAIAPIKey     string        `json:"-"`
	OpenRouterAPIKey string        `json:"-"`
	AnthropicAPIKey  string        `json:"-"`
	GeminiAPIKey     string        `json:"-"`
	OllamaURL        string        `json:"-" validate:"omitempty,url"`
	Timeout          time.Duration `json:"timeout" validate:"gte=0"`
	MaxTokens        int           `json:"maxTokens" validate:"gte=0"`
}

var validate = validator.New()

// Validate checks field constraints.
func (c Config) Validate() error {
	if c.Timeout < 0 {
		return errInvalidProviderTimeout
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid analyzer config: %w", err)
	}

	return nil
}

// Update holds the fields a caller may override. Nil fields are left alone.
type Update struct {
	Provider *Provider
	Model    *string
	Timeout  *time.Duration
}

// Merge returns a copy of c with the non-nil fields of u applied.
func (c Config) Merge(u Update) Config {
	if u.Provider != nil {
		c.Provider = *u.Provider
	}

	if u.Model != nil {
		c.Model = *u.Model
	}

	if u.Timeout != nil {
		c.Timeout = *u.Timeout
	}

	return c
}

// APIKey returns the credential for the configured provider. Ollama needs
// a server URL instead.
func (c Config) APIKey() string {
	switch c.Provider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderOpenRouter:
		return c.OpenRouterAPIKey
	case ProviderAnthropic:
		return c.AnthropicAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	case ProviderOllama:
		return c.OllamaURL
	}

	return ""
}

// HasCredentials reports whether the configured provider can be called.
func (c Config) HasCredentials() bool {
	return c.APIKey() != ""
}

// EffectiveModel resolves the model name, falling back to the provider
// default.
func (c Config) EffectiveModel() string {
	if c.Model != "" {
		return c.Model
	}

	switch c.Provider {
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderOpenRouter:
		return defaultRouterModel
	case ProviderAnthropic:
		return defaultClaudeModel
	case ProviderGemini:
		return defaultGeminiModel
	}

	return ""
}

// EffectiveTimeout returns Timeout or DefaultTimeout when unset.
func (c Config) EffectiveTimeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}

	return c.Timeout
}

// EffectiveMaxTokens returns the configured token limit, or def when none is set.
func (c Config) EffectiveMaxTokens(def int) int {
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}

	return def
}
