/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/analyzer"
)

// analyzerFlags are shared by every command that talks to a provider.
func analyzerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "provider",
			Sources: cli.EnvVars("LABLENS_PROVIDER"),
			Value:   string(analyzer.ProviderOpenRouter),
			Usage:   "LLM provider (openai, openrouter, anthropic, gemini, ollama, mock)",
		},
		&cli.StringFlag{
			Name:    "model",
			Sources: cli.EnvVars("LABLENS_MODEL"),
			Usage:   "model name (defaults per provider)",
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Sources: cli.EnvVars("LABLENS_TIMEOUT"),
			Value:   analyzer.DefaultTimeout,
			Usage:   "timeout for each provider request",
		},
		&cli.IntFlag{
			Name:    "max-tokens",
			Sources: cli.EnvVars("LABLENS_MAX_TOKENS"),
			Usage:   "response token limit for every provider request (0 keeps the per-call defaults)",
		},
		&cli.StringFlag{
			Name:    "openai-api-key",
			Sources: cli.EnvVars("OPENAI_API_KEY"),
			Usage:   "OpenAI API key",
		},
		&cli.StringFlag{
			Name:    "openrouter-api-key",
			Sources: cli.EnvVars("OPENROUTER_API_KEY"),
			Usage:   "OpenRouter API key",
		},
		&cli.StringFlag{
			Name:    "anthropic-api-key",
			Sources: cli.EnvVars("ANTHROPIC_API_KEY"),
			Usage:   "Anthropic API key",
		},
		&cli.StringFlag{
			Name:    "gemini-api-key",
			Sources: cli.EnvVars("GEMINI_API_KEY"),
			Usage:   "Gemini API key",
		},
		&cli.StringFlag{
			Name:    "ollama-url",
			Sources: cli.EnvVars("OLLAMA_URL"),
			Usage:   "Ollama server URL (e.g., http://localhost:11434)",
		},
		&cli.StringFlag{
			Name:    "log-level",
			Sources: cli.EnvVars("LABLENS_LOG_LEVEL"),
			Value:   "info",
			Usage:   "minimum log level (debug, info, warn, error)",
		},
	}
}

// analyzerConfig builds and validates the provider configuration from flags.
func analyzerConfig(cmd *cli.Command) (analyzer.Config, error) {
	cfg := analyzer.Config{
		Provider:         analyzer.ParseProvider(cmd.String("provider")),
		Model:            cmd.String("model"),
		Timeout:          cmd.Duration("timeout"),
		MaxTokens:        int(cmd.Int("max-tokens")),
		OpenAIAPIKey:     cmd.String("openai-api-key"),
		OpenRouterAPIKey: cmd.String("openrouter-api-key"),
		AnthropicAPIKey:  cmd.String("anthropic-api-key"),
		GeminiAPIKey:     cmd.String("gemini-api-key"),
		OllamaURL:        cmd.String("ollama-url"),
	}

	if err := cfg.Validate(); err != nil {
		return analyzer.Config{}, err
	}

	if !cfg.Provider.Supported() && cfg.Provider != analyzer.ProviderMock {
		return analyzer.Config{}, errUnknownProvider
	}

	return cfg, nil
}
