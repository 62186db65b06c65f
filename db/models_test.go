// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"testing"

	"github.com/lablens/lablens/analyzer"
)

func TestEventStatsFallbackRate(t *testing.T) {
	t.Parallel()

	if got := (EventStats{}).FallbackRate(); got != 0 {
		t.Fatalf("expected 0 for no events, got %v", got)
	}

	s := EventStats{Model: 3, Fallback: 1}
	if s.Total() != 4 || s.FallbackRate() != 0.25 {
		t.Fatalf("unexpected totals: %d %v", s.Total(), s.FallbackRate())
	}
}

func TestAnalysisEventDegraded(t *testing.T) {
	t.Parallel()

	if (AnalysisEvent{Source: "model"}).Degraded() {
		t.Fatal("did not expect model event to be degraded")
	}

	if !(AnalysisEvent{Source: "fallback"}).Degraded() {
		t.Fatal("expected fallback event to be degraded")
	}
}

func TestStoreRequiresConnection(t *testing.T) {
	if Enabled() {
		t.Skip("pool initialized by TestMain")
	}

	if err := (EventStore{}).RecordEvent(testContext(), analyzer.Event{Kind: analyzer.KindAnalysis}); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}

	if _, err := ListEvents(testContext(), 10); !errors.Is(err, ErrDatabaseConnectionNotInitialized) {
		t.Fatalf("expected ErrDatabaseConnectionNotInitialized, got %v", err)
	}
}
