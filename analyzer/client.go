/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"context"
	"fmt"
	"net/http"
)

// Request is a single-turn prompt, optionally carrying a document.
type Request struct {
	Prompt      string
	Document    *Document
	MaxTokens   int
	Temperature float64
	// JSON asks the provider for a JSON-only response where supported.
	JSON bool
}

// Client sends one request to a model and returns its text reply.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ClientFactory builds a Client for a configuration with credentials.
type ClientFactory func(cfg Config) (Client, error)

// NewClient is the default ClientFactory.
func NewClient(cfg Config) (Client, error) {
	httpClient := &http.Client{Timeout: cfg.EffectiveTimeout()}

	switch cfg.Provider {
	case ProviderOpenAI, ProviderOpenRouter, ProviderAnthropic:
		return newLangchainClient(cfg, httpClient)
	case ProviderGemini:
		return newGeminiClient(cfg, httpClient), nil
	case ProviderOllama:
		return newOllamaClient(cfg, httpClient)
	}

	return nil, fmt.Errorf("%w: %s", errUnsupportedProvider, cfg.Provider)
}

// textWithDocument returns the prompt, with the document's text appended
// when the document is a PDF the provider cannot read natively.
func textWithDocument(req Request) (string, error) {
	if req.Document == nil || !req.Document.IsPDF() {
		return req.Prompt, nil
	}

	text, err := req.Document.Text()
	if err != nil {
		return "", err
	}

	return req.Prompt + fmt.Sprintf(documentTextPrompt, text), nil
}
