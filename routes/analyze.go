/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/lablens/lablens/analyzer"
	"github.com/lablens/lablens/logging"
)

var webLogger = logging.Logger(logging.SourceWeb)

// Index renders the upload form
func Index(t template.Template, data template.Data) {
	data["IsUpload"] = true
	data["MaxUploadMB"] = analyzer.MaxDocumentSize >> 20
	t.HTML(http.StatusOK, "index")
}

// Analyze accepts an uploaded lab report, runs the analysis and stores the
// panel in the session.
func Analyze(c flamego.Context, s session.Session, a *analyzer.Analyzer, base analyzer.Config) {
	doc, err := readUpload(c)
	if err != nil {
		if !errors.Is(err, analyzer.ErrUnsupportedDocument) {
			webLogger.Warn("Rejected upload", "error", err)
			SetErrorFlash(s, "Please choose a lab report image or PDF under 20 MB.")
			c.Redirect("/", http.StatusSeeOther)

			return
		}

		// The analyzer reports unsupported documents as a tagged fallback.
		webLogger.Info("Unsupported upload type", "error", err)
	}

	cfg := sessionConfig(s, base)
	out := a.Analyze(c.Request().Context(), cfg, doc)

	if err := savePanel(s, out); err != nil {
		webLogger.Error("Failed to store panel in session", "error", err)
		SetErrorFlash(s, "Failed to store the analysis")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	if out.Degraded() {
		SetWarningFlash(s, fallbackNotice(out.FallbackReason))
	} else {
		SetSuccessFlash(s, fmt.Sprintf("Extracted %d tests from %s", out.Panel.TestCount(), doc.Name))
	}

	c.Redirect("/results", http.StatusSeeOther)
}

// readUpload reads the multipart "file" field. On ErrUnsupportedDocument the
// returned document carries only its name.
func readUpload(c flamego.Context) (analyzer.Document, error) {
	r := c.Request().Request
	r.Body = http.MaxBytesReader(c.ResponseWriter(), r.Body, analyzer.MaxDocumentSize+(1<<20))

	file, header, err := r.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return analyzer.Document{}, errMissingUpload
		}

		return analyzer.Document{}, fmt.Errorf("failed to read upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, analyzer.MaxDocumentSize+1))
	if err != nil {
		return analyzer.Document{}, fmt.Errorf("failed to read upload: %w", err)
	}

	doc, err := analyzer.LoadDocument(header.Filename, data)
	if errors.Is(err, analyzer.ErrUnsupportedDocument) {
		return analyzer.Document{Name: header.Filename}, err
	}

	return doc, err
}

// ClearResults drops the session panel.
func ClearResults(c flamego.Context, s session.Session) {
	clearPanel(s)
	SetInfoFlash(s, "Results cleared")
	c.Redirect("/", http.StatusSeeOther)
}
