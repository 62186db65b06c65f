/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/lablens/lablens/analyzer"
)

// ProviderOption is a selectable provider on the settings page.
type ProviderOption struct {
	ID         string
	Name       string
	Configured bool
}

func providerOptions(base analyzer.Config) []ProviderOption {
	options := []ProviderOption{
		{ID: string(analyzer.ProviderOpenAI), Name: "OpenAI"},
		{ID: string(analyzer.ProviderOpenRouter), Name: "OpenRouter"},
		{ID: string(analyzer.ProviderAnthropic), Name: "Anthropic"},
		{ID: string(analyzer.ProviderGemini), Name: "Gemini"},
		{ID: string(analyzer.ProviderOllama), Name: "Ollama"},
		{ID: string(analyzer.ProviderMock), Name: "Sample data"},
	}

	for i := range options {
		cfg := base
		cfg.Provider = analyzer.Provider(options[i].ID)
		options[i].Configured = cfg.HasCredentials() || cfg.Provider == analyzer.ProviderMock
	}

	return options
}

// Settings renders the provider and model form
func Settings(s session.Session, t template.Template, data template.Data, base analyzer.Config) {
	cfg := sessionConfig(s, base)

	data["IsSettings"] = true
	data["Providers"] = providerOptions(base)
	data["Models"] = analyzer.AvailableModels()
	data["SelectedProvider"] = string(cfg.Provider)
	data["SelectedModel"] = cfg.Model
	data["Timeout"] = cfg.EffectiveTimeout().String()

	t.HTML(http.StatusOK, "settings")
}

// UpdateSettings stores the provider and model for this session. API keys
// only come from server configuration.
func UpdateSettings(c flamego.Context, s session.Session) {
	provider := analyzer.ParseProvider(c.Request().FormValue("provider"))
	model := strings.TrimSpace(c.Request().FormValue("model"))

	if err := validateProvider(provider); err != nil {
		SetErrorFlash(s, err.Error())
		c.Redirect("/settings", http.StatusSeeOther)

		return
	}

	s.Set(sessionProviderKey, string(provider))
	s.Set(sessionModelKey, model)

	webLogger.Info("Updated session settings", "provider", provider, "model", model)
	SetSuccessFlash(s, "Settings saved")
	c.Redirect("/settings", http.StatusSeeOther)
}

func validateProvider(p analyzer.Provider) error {
	if p.Supported() || p == analyzer.ProviderMock {
		return nil
	}

	return fmt.Errorf("%w: %s", errUnknownProvider, p)
}
