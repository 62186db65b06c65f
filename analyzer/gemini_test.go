// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package analyzer

import "testing"

func TestGeminiGenerateConfig(t *testing.T) {
	t.Parallel()

	gc := generateConfig(Request{MaxTokens: 1000, JSON: true})
	if gc.MaxOutputTokens != 1000 || gc.ResponseMIMEType != "application/json" || gc.Temperature != nil {
		t.Fatalf("unexpected extraction config: %+v", gc)
	}

	gc = generateConfig(Request{MaxTokens: 800, Temperature: 0.7})
	if gc.MaxOutputTokens != 800 || gc.ResponseMIMEType != "" || gc.Temperature == nil || *gc.Temperature != 0.7 {
		t.Fatalf("unexpected message config: %+v", gc)
	}

	if gc := generateConfig(Request{}); gc.MaxOutputTokens != 0 {
		t.Fatalf("expected no token limit, got %d", gc.MaxOutputTokens)
	}
}
