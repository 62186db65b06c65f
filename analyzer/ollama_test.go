// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaClientStreamsReply(t *testing.T) {
	t.Parallel()

	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}

		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"{\\\"labType\\\":\"}}]}\n\n")
		fmt.Fprint(w, ": keep-alive\n\n")
		fmt.Fprint(w, "data: not json\n\n")
		fmt.Fprint(w, "data: {\"choices\":[{\"delta\":{\"content\":\"\\\"CBC\\\"}\"}}]}\n\n")
		fmt.Fprint(w, "data: [DONE]\n\n")
	}))
	defer server.Close()

	client, err := newOllamaClient(Config{Provider: ProviderOllama, OllamaURL: server.URL + "/", Model: "llava"}, server.Client())
	if err != nil {
		t.Fatalf("newOllamaClient failed: %v", err)
	}

	doc := Document{MIMEType: "image/png", Data: pngHeader}
	text, err := client.Complete(context.Background(), Request{Prompt: "extract", Document: &doc, MaxTokens: 1000})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}

	if text != `{"labType":"CBC"}` {
		t.Fatalf("unexpected reply %q", text)
	}

	if got.Model != "llava" || !got.Stream || got.MaxTokens != 1000 {
		t.Fatalf("unexpected request: %+v", got)
	}

	parts := got.Messages[0].Content
	if len(parts) != 2 || parts[1].Type != "image_url" || !strings.HasPrefix(parts[1].ImageURL.URL, "data:image/png;base64,") {
		t.Fatalf("expected text and image parts, got %+v", parts)
	}
}

func TestOllamaClientStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	client, err := newOllamaClient(Config{OllamaURL: server.URL, Model: "missing"}, server.Client())
	if err != nil {
		t.Fatalf("newOllamaClient failed: %v", err)
	}

	_, err = client.Complete(context.Background(), Request{Prompt: "hi"})
	if !errors.Is(err, errProviderStatus) {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestOllamaClientEmptyReply(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, "data: [DONE]\n")
	}))
	defer server.Close()

	client, _ := newOllamaClient(Config{OllamaURL: server.URL}, server.Client())
	if _, err := client.Complete(context.Background(), Request{Prompt: "hi"}); !errors.Is(err, errEmptyResponse) {
		t.Fatalf("expected empty response error, got %v", err)
	}
}

func TestNewOllamaClientRequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := newOllamaClient(Config{Provider: ProviderOllama}, http.DefaultClient); !errors.Is(err, errOllamaURLRequired) {
		t.Fatalf("expected missing URL error, got %v", err)
	}
}

func TestAnalyzeThroughOllama(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		reply, _ := json.Marshal(`{"labType":"Thyroid","timePeriods":[{"label":"Jan","results":{"tsh":{"value":2.1,"unit":"mIU/L","status":"normal","reference":"0.4-4.0"}}}]}`)
		fmt.Fprintf(w, "data: {\"choices\":[{\"delta\":{\"content\":%s}}]}\n\ndata: [DONE]\n\n", reply)
	}))
	defer server.Close()

	out := New().Analyze(context.Background(), Config{Provider: ProviderOllama, OllamaURL: server.URL, Model: "llava"}, testDocument(t))
	if out.Source != SourceModel {
		t.Fatalf("expected model outcome, got %s/%s (%v)", out.Source, out.FallbackReason, out.Err)
	}

	if out.Panel.LabType != "Thyroid" || out.Panel.TimePeriods[0].Label != "Jan" {
		t.Fatalf("unexpected panel %+v", out.Panel)
	}
}
