// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lablens/lablens/analyzer"
)

func testContext() context.Context {
	return context.Background()
}

func mustInsertEvent(t *testing.T, ev analyzer.Event) uuid.UUID {
	t.Helper()

	id, err := InsertEvent(testContext(), ev)
	if err != nil {
		t.Fatalf("failed to insert event: %v", err)
	}

	return id
}

func analysisEvent(source analyzer.Source, reason analyzer.FallbackReason) analyzer.Event {
	return analyzer.Event{
		Kind:           analyzer.KindAnalysis,
		Provider:       analyzer.ProviderOpenRouter,
		Model:          "openai/gpt-4o",
		Source:         source,
		FallbackReason: reason,
		LabType:        "Lipid Panel",
		PeriodCount:    2,
		TestCount:      4,
		Duration:       1500 * time.Millisecond,
	}
}
