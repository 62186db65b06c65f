/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/flamego/session"
	"github.com/google/uuid"

	"github.com/lablens/lablens/analyzer"
	"github.com/lablens/lablens/lab"
)

// Session keys. The panel is stored as JSON so any session store can hold it.
const (
	sessionPanelKey    = "panel"
	sessionPanelIDKey  = "panel_id"
	sessionSourceKey   = "panel_source"
	sessionReasonKey   = "panel_reason"
	sessionProviderKey = "provider"
	sessionModelKey    = "model"
	sessionAnalyzedKey = "panel_analyzed_at"

	sessionPanelProviderKey = "panel_provider"
)

// sessionPanel is the analysis held for the active session.
type sessionPanel struct {
	ID         string
	Panel      lab.LabPanel
	Source     analyzer.Source
	Reason     analyzer.FallbackReason
	Provider   string
	AnalyzedAt time.Time
}

// Degraded reports whether the stored panel came from the fallback path.
func (p sessionPanel) Degraded() bool {
	return p.Source == analyzer.SourceFallback
}

func savePanel(s session.Session, out analyzer.AnalysisOutcome) error {
	data, err := json.Marshal(out.Panel)
	if err != nil {
		return fmt.Errorf("failed to encode panel: %w", err)
	}

	s.Set(sessionPanelKey, string(data))
	s.Set(sessionPanelIDKey, uuid.NewString())
	s.Set(sessionSourceKey, string(out.Source))
	s.Set(sessionReasonKey, string(out.FallbackReason))
	s.Set(sessionAnalyzedKey, time.Now().UTC().Format(time.RFC3339))
	if out.Provider != "" {
		s.Set(sessionPanelProviderKey, string(out.Provider))
	}

	return nil
}

func loadPanel(s session.Session) (sessionPanel, error) {
	raw, ok := s.Get(sessionPanelKey).(string)
	if !ok || raw == "" {
		return sessionPanel{}, errNoPanel
	}

	var panel lab.LabPanel
	if err := json.Unmarshal([]byte(raw), &panel); err != nil {
		return sessionPanel{}, fmt.Errorf("failed to decode session panel: %w", err)
	}

	out := sessionPanel{Panel: panel}
	out.ID, _ = s.Get(sessionPanelIDKey).(string)

	if v, ok := s.Get(sessionSourceKey).(string); ok {
		out.Source = analyzer.Source(v)
	}

	if v, ok := s.Get(sessionReasonKey).(string); ok {
		out.Reason = analyzer.FallbackReason(v)
	}

	out.Provider, _ = s.Get(sessionPanelProviderKey).(string)

	if v, ok := s.Get(sessionAnalyzedKey).(string); ok {
		out.AnalyzedAt, _ = time.Parse(time.RFC3339, v)
	}

	return out, nil
}

func clearPanel(s session.Session) {
	for _, key := range []string{sessionPanelKey, sessionPanelIDKey, sessionSourceKey, sessionReasonKey, sessionAnalyzedKey, sessionPanelProviderKey} {
		s.Delete(key)
	}
}

// sessionConfig applies the session's provider and model choice to base.
func sessionConfig(s session.Session, base analyzer.Config) analyzer.Config {
	var update analyzer.Update

	if v, ok := s.Get(sessionProviderKey).(string); ok && v != "" {
		provider := analyzer.ParseProvider(v)
		update.Provider = &provider
	}

	if v, ok := s.Get(sessionModelKey).(string); ok {
		update.Model = &v
	}

	return base.Merge(update)
}
