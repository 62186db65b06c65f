/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// geminiClient sends documents to Gemini as inline blobs, PDFs included.
type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func newGeminiClient(cfg Config, httpClient *http.Client) *geminiClient {
	return &geminiClient{
		apiKey:     cfg.GeminiAPIKey,
		model:      cfg.EffectiveModel(),
		httpClient: httpClient,
	}
}

func (c *geminiClient) Complete(ctx context.Context, req Request) (string, error) {
	cc := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}

	parts := []*genai.Part{{Text: req.Prompt}}
	if req.Document != nil {
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				Data:     req.Document.Data,
				MIMEType: req.Document.MIMEType,
			},
		})
	}

	contents := []*genai.Content{{Role: "user", Parts: parts}}

	result, err := client.Models.GenerateContent(ctx, c.model, contents, generateConfig(req))
	if err != nil {
		return "", fmt.Errorf("Gemini GenerateContent failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", errEmptyResponse
	}

	return text, nil
}

func generateConfig(req Request) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{}
	if req.JSON {
		gc.ResponseMIMEType = "application/json"
	}

	if req.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(req.MaxTokens)
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		gc.Temperature = &temp
	}

	return gc
}
