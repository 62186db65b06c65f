/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAI-compatible request/response structures
type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Stream      bool          `json:"stream,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatDelta struct {
	Content string `json:"content"`
}

type chatChoice struct {
	Delta chatDelta `json:"delta"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// ollamaClient talks to Ollama's OpenAI-compatible endpoint and collects the
// streamed reply.
type ollamaClient struct {
	endpoint   string
	model      string
	httpClient *http.Client
}

func newOllamaClient(cfg Config, httpClient *http.Client) (*ollamaClient, error) {
	if cfg.OllamaURL == "" {
		return nil, errOllamaURLRequired
	}

	return &ollamaClient{
		endpoint:   strings.TrimSuffix(cfg.OllamaURL, "/") + "/v1/chat/completions",
		model:      cfg.EffectiveModel(),
		httpClient: httpClient,
	}, nil
}

func (c *ollamaClient) Complete(ctx context.Context, req Request) (string, error) {
	var sb strings.Builder

	err := c.Stream(ctx, req, func(chunk string) error {
		sb.WriteString(chunk)
		return nil
	})
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errEmptyResponse
	}

	return text, nil
}

// Stream sends req and calls onChunk for each piece of text received.
func (c *ollamaClient) Stream(ctx context.Context, req Request, onChunk func(string) error) error {
	prompt, err := textWithDocument(req)
	if err != nil {
		return err
	}

	parts := []contentPart{{Type: "text", Text: prompt}}
	if req.Document != nil && !req.Document.IsPDF() {
		parts = append(parts, contentPart{Type: "image_url", ImageURL: &imageURL{URL: req.Document.DataURI()}})
	}

	reqBody := chatRequest{
		Model:       c.model,
		Stream:      true,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Messages:    []chatMessage{{Role: "user", Content: parts}},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call Ollama: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: ollama %d: %s", errProviderStatus, resp.StatusCode, string(body))
	}

	reader := bufio.NewReader(resp.Body)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read stream: %w", err)
		}

		lineStr := strings.TrimSpace(string(line))

		// SSE format: "data: {...}"
		if data, ok := strings.CutPrefix(lineStr, "data: "); ok {
			if data == "[DONE]" {
				return nil
			}

			var chatResp chatResponse
			if jerr := json.Unmarshal([]byte(data), &chatResp); jerr == nil {
				if chatResp.Error != nil {
					return fmt.Errorf("Ollama error: %s", chatResp.Error.Message)
				}

				if len(chatResp.Choices) > 0 && chatResp.Choices[0].Delta.Content != "" {
					if cerr := onChunk(chatResp.Choices[0].Delta.Content); cerr != nil {
						return cerr
					}
				}
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}
