// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flamego/flamego"

	"github.com/lablens/lablens/analyzer"
)

func newTestServer(t *testing.T) *flamego.Flame {
	t.Helper()

	f, err := newServer(analyzer.Config{Provider: analyzer.ProviderMock}, analyzer.New(), serverOptions{
		SessionSecret: "test-secret",
		RateLimit:     60,
	})
	if err != nil {
		t.Fatalf("newServer failed: %v", err)
	}

	return f
}

func TestConfigureEmptyNotFoundHandlerReturnsStatusOnly(t *testing.T) {
	t.Parallel()

	f := flamego.New()
	configureEmptyNotFoundHandler(f)

	req := httptest.NewRequest(http.MethodGet, "/does-not-exist", nil)
	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rec.Code)
	}

	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404 body, got %q", rec.Body.String())
	}
}

//nolint:paralleltest // newServer sets the global flamego environment.
func TestServerRendersUploadPage(t *testing.T) {
	f := newTestServer(t)

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Analyze lab results", `name="_csrf"`, `name="file"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in upload page", want)
		}
	}

	if got := rec.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control: %q", got)
	}
}

//nolint:paralleltest // newServer sets the global flamego environment.
func TestServerJSONEndpoints(t *testing.T) {
	f := newTestServer(t)

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/models", nil))

	var models struct {
		Models []analyzer.Model `json:"models"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &models); err != nil || len(models.Models) == 0 {
		t.Fatalf("unexpected models response: %q (%v)", rec.Body.String(), err)
	}

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/panel", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without a session panel, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthy server, got %d", rec.Code)
	}
}

//nolint:paralleltest // newServer sets the global flamego environment.
func TestServerRejectsAnalyzeWithoutCSRFToken(t *testing.T) {
	f := newTestServer(t)

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/analyze", nil))

	if rec.Code == http.StatusSeeOther {
		t.Fatal("expected request without CSRF token to be rejected")
	}
}

//nolint:paralleltest // newServer sets the global flamego environment.
func TestServerServesStylesheetOnly(t *testing.T) {
	f := newTestServer(t)

	rec := httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/style.css", nil))

	if rec.Code != http.StatusOK || !strings.Contains(rec.Header().Get("Content-Type"), "text/css") {
		t.Fatalf("expected stylesheet, got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	rec = httptest.NewRecorder()
	f.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/embed.go", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected Go source to stay unserved, got %d", rec.Code)
	}
}
