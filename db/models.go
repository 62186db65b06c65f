/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"
)

// AnalysisEvent is one stored analysis or message generation outcome. It
// holds no lab values.
type AnalysisEvent struct {
	ID             uuid.UUID `db:"id"`
	Kind           string    `db:"kind"`
	Provider       string    `db:"provider"`
	Model          string    `db:"model"`
	Source         string    `db:"source"`
	FallbackReason string    `db:"fallback_reason"`
	LabType        string    `db:"lab_type"`
	PeriodCount    int       `db:"period_count"`
	TestCount      int       `db:"test_count"`
	DurationMS     int64     `db:"duration_ms"`
	CreatedAt      time.Time `db:"created_at"`
}

// Degraded reports whether the event was a fallback.
func (e AnalysisEvent) Degraded() bool {
	return e.Source == "fallback"
}

// Duration returns the stored duration.
func (e AnalysisEvent) Duration() time.Duration {
	return time.Duration(e.DurationMS) * time.Millisecond
}

// EventStats counts model and fallback outcomes per kind.
type EventStats struct {
	Kind     string `db:"kind"`
	Model    int64  `db:"model"`
	Fallback int64  `db:"fallback"`
}

// Total returns the number of events of this kind.
func (s EventStats) Total() int64 {
	return s.Model + s.Fallback
}

// FallbackRate returns the fraction of events that fell back, or 0.
func (s EventStats) FallbackRate() float64 {
	if s.Total() == 0 {
		return 0
	}

	return float64(s.Fallback) / float64(s.Total())
}
