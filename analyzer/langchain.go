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

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

// langchainClient covers the OpenAI, OpenRouter and Anthropic chat APIs.
type langchainClient struct {
	provider Provider
	model    llms.Model
}

// headerTransport adds fixed headers to every outgoing request.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header.Set(k, v)
	}

	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	return base.RoundTrip(req)
}

func newLangchainClient(cfg Config, httpClient *http.Client) (*langchainClient, error) {
	var (
		model llms.Model
		err   error
	)

	switch cfg.Provider {
	case ProviderOpenAI:
		model, err = openai.New(
			openai.WithModel(cfg.EffectiveModel()),
			openai.WithToken(cfg.OpenAIAPIKey),
			openai.WithHTTPClient(httpClient),
		)
	case ProviderOpenRouter:
		routed := *httpClient
		routed.Transport = &headerTransport{
			base: httpClient.Transport,
			headers: map[string]string{
				"HTTP-Referer": openRouterReferer,
				"X-Title":      openRouterTitle,
			},
		}

		model, err = openai.New(
			openai.WithModel(cfg.EffectiveModel()),
			openai.WithToken(cfg.OpenRouterAPIKey),
			openai.WithBaseURL(openRouterBaseURL),
			openai.WithHTTPClient(&routed),
		)
	case ProviderAnthropic:
		model, err = anthropic.New(
			anthropic.WithModel(cfg.EffectiveModel()),
			anthropic.WithToken(cfg.AnthropicAPIKey),
			anthropic.WithHTTPClient(httpClient),
		)
	default:
		return nil, fmt.Errorf("%w: %s", errUnsupportedProvider, cfg.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}

	return &langchainClient{provider: cfg.Provider, model: model}, nil
}

func (c *langchainClient) Complete(ctx context.Context, req Request) (string, error) {
	parts, err := c.parts(req)
	if err != nil {
		return "", err
	}

	messages := []llms.MessageContent{
		{Role: llms.ChatMessageTypeHuman, Parts: parts},
	}

	var options []llms.CallOption
	if req.MaxTokens > 0 {
		options = append(options, llms.WithMaxTokens(req.MaxTokens))
	}

	if req.Temperature > 0 {
		options = append(options, llms.WithTemperature(req.Temperature))
	}

	if req.JSON && c.provider == ProviderOpenAI {
		options = append(options, llms.WithJSONMode())
	}

	resp, err := c.model.GenerateContent(ctx, messages, options...)
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", c.provider, err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", errEmptyResponse
	}

	content := strings.TrimSpace(resp.Choices[0].Content)
	if content == "" {
		return "", errEmptyResponse
	}

	return content, nil
}

// parts builds the message content. Images go inline; PDFs are sent as
// extracted text because these chat APIs only take images.
func (c *langchainClient) parts(req Request) ([]llms.ContentPart, error) {
	prompt, err := textWithDocument(req)
	if err != nil {
		return nil, err
	}

	parts := []llms.ContentPart{llms.TextPart(prompt)}

	doc := req.Document
	if doc == nil || doc.IsPDF() {
		return parts, nil
	}

	if c.provider == ProviderAnthropic {
		return append(parts, llms.BinaryPart(doc.MIMEType, doc.Data)), nil
	}

	return append(parts, llms.ImageURLPart(doc.DataURI())), nil
}
