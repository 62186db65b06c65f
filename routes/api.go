/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/flamego/flamego"
	"github.com/flamego/session"

	"github.com/lablens/lablens/analyzer"
	"github.com/lablens/lablens/lab"
)

type panelResponse struct {
	ID             string                  `json:"id"`
	Panel          lab.LabPanel            `json:"panel"`
	Source         analyzer.Source         `json:"source"`
	FallbackReason analyzer.FallbackReason `json:"fallbackReason,omitempty"`
	Provider       string                  `json:"provider,omitempty"`
	AnalyzedAt     time.Time               `json:"analyzedAt"`
	Trends         []lab.TestTrend         `json:"trends"`
}

func writeJSON(c flamego.Context, status int, v any) {
	w := c.ResponseWriter()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		webLogger.Error("Failed to write JSON response", "error", err)
	}
}

// APIModels returns the selectable model list
func APIModels(c flamego.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"models": analyzer.AvailableModels()})
}

// APIPanel returns the session panel in the extractor's JSON shape
func APIPanel(c flamego.Context, s session.Session) {
	stored, err := loadPanel(s)
	if err != nil {
		writeJSON(c, http.StatusNotFound, map[string]string{"error": errNoPanel.Error()})
		return
	}

	trends := lab.Compare(stored.Panel)
	if trends == nil {
		trends = []lab.TestTrend{}
	}

	writeJSON(c, http.StatusOK, panelResponse{
		ID:             stored.ID,
		Panel:          stored.Panel,
		Source:         stored.Source,
		FallbackReason: stored.Reason,
		Provider:       stored.Provider,
		AnalyzedAt:     stored.AnalyzedAt,
		Trends:         trends,
	})
}
