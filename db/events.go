/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lablens/lablens/analyzer"
)

const defaultEventLimit = 50

// EventStore records analyzer outcomes in the analysis_events table.
type EventStore struct{}

// RecordEvent implements analyzer.Recorder.
func (EventStore) RecordEvent(ctx context.Context, ev analyzer.Event) error {
	_, err := InsertEvent(ctx, ev)
	return err
}

// InsertEvent stores ev and returns its id.
func InsertEvent(ctx context.Context, ev analyzer.Event) (uuid.UUID, error) {
	if pool == nil {
		return uuid.Nil, ErrDatabaseConnectionNotInitialized
	}

	switch ev.Kind {
	case analyzer.KindAnalysis, analyzer.KindPatientMessage, analyzer.KindStaffMessage:
	default:
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidEventKind, ev.Kind)
	}

	id := uuid.New()

	_, err := pool.Exec(ctx, `
		INSERT INTO analysis_events
			(id, kind, provider, model, source, fallback_reason, lab_type, period_count, test_count, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, id, string(ev.Kind), string(ev.Provider), ev.Model, string(ev.Source), string(ev.FallbackReason),
		ev.LabType, ev.PeriodCount, ev.TestCount, ev.Duration.Milliseconds())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert analysis event: %w", err)
	}

	return id, nil
}

// ListEvents returns the newest events first. A non-positive limit uses the
// default.
func ListEvents(ctx context.Context, limit int) ([]AnalysisEvent, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	if limit <= 0 {
		limit = defaultEventLimit
	}

	rows, err := pool.Query(ctx, `
		SELECT id, kind, provider, model, source, fallback_reason, lab_type,
		       period_count, test_count, duration_ms, created_at
		FROM analysis_events
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analysis events: %w", err)
	}
	defer rows.Close()

	var events []AnalysisEvent
	for rows.Next() {
		var ev AnalysisEvent
		err := rows.Scan(
			&ev.ID, &ev.Kind, &ev.Provider, &ev.Model, &ev.Source, &ev.FallbackReason, &ev.LabType,
			&ev.PeriodCount, &ev.TestCount, &ev.DurationMS, &ev.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis event: %w", err)
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis events: %w", err)
	}

	return events, nil
}

// GetEventStats returns model and fallback counts per kind, ordered by kind.
func GetEventStats(ctx context.Context) ([]EventStats, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	rows, err := pool.Query(ctx, `
		SELECT kind,
		       COUNT(*) FILTER (WHERE source = 'model') AS model,
		       COUNT(*) FILTER (WHERE source = 'fallback') AS fallback
		FROM analysis_events
		GROUP BY kind
		ORDER BY kind ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query event stats: %w", err)
	}
	defer rows.Close()

	var stats []EventStats
	for rows.Next() {
		var s EventStats
		if err := rows.Scan(&s.Kind, &s.Model, &s.Fallback); err != nil {
			return nil, fmt.Errorf("failed to scan event stats: %w", err)
		}
		stats = append(stats, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event stats: %w", err)
	}

	return stats, nil
}
