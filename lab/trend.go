/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"math"
	"strconv"
)

// Direction describes how a value moved between two periods.
type Direction string

// Direction values.
const (
	DirectionIncreased Direction = "increased"
	DirectionDecreased Direction = "decreased"
	DirectionStable    Direction = "stable"
)

// Trend symbols.
const (
	SymbolUp     = "↑"
	SymbolDown   = "↓"
	SymbolStable = "→"
)

// StableThreshold is the absolute difference below which two readings are
// considered unchanged, whatever the percentage.
const StableThreshold = 0.1

// UndefinedChange labels a change whose percentage cannot be computed
// because the previous reading was zero or too small to divide by.
const UndefinedChange = "n/a"

// Trend is the comparison of the same test across two periods.
type Trend struct {
	Direction      Direction `json:"direction"`
	Symbol         string    `json:"symbol"`
	Change         string    `json:"change"`
	PercentDefined bool      `json:"percentDefined"`
}

// ComputeTrend compares current against previous.
func ComputeTrend(current, previous float64) Trend {
	delta := current - previous

	if math.Abs(delta) < StableThreshold {
		return Trend{Direction: DirectionStable, Symbol: SymbolStable, Change: "stable", PercentDefined: true}
	}

	direction, symbol, sign := DirectionDecreased, SymbolDown, "-"
	if delta > 0 {
		direction, symbol, sign = DirectionIncreased, SymbolUp, "+"
	}

	if previous == 0 {
		return Trend{Direction: direction, Symbol: symbol, Change: UndefinedChange}
	}

	percent := math.Round(math.Abs(delta/previous*100)*10) / 10
	if math.IsInf(percent, 0) || math.IsNaN(percent) {
		return Trend{Direction: direction, Symbol: symbol, Change: UndefinedChange}
	}

	return Trend{
		Direction:      direction,
		Symbol:         symbol,
		Change:         sign + strconv.FormatFloat(percent, 'f', 1, 64) + "%",
		PercentDefined: true,
	}
}

// TestTrend pairs a test with its current and previous readings.
type TestTrend struct {
	Name     string   `json:"name"`
	Current  LabValue `json:"current"`
	Previous LabValue `json:"previous"`
	Trend    Trend    `json:"trend"`
}

// Compare returns a trend for every current-period test that the previous
// period also reports, in current-period order. Tests missing from the
// previous period are omitted.
func Compare(panel LabPanel) []TestTrend {
	current, ok := panel.Current()
	if !ok {
		return nil
	}

	previous, ok := panel.Previous()
	if !ok {
		return nil
	}

	trends := make([]TestTrend, 0, len(current.Results))
	for _, r := range current.Results {
		prev, found := previous.Get(r.Name)
		if !found {
			continue
		}

		trends = append(trends, TestTrend{
			Name:     r.Name,
			Current:  r.LabValue,
			Previous: prev,
			Trend:    ComputeTrend(r.Value, prev.Value),
		})
	}

	return trends
}

// TrendFor returns the trend of one test between the current and previous periods.
func TrendFor(panel LabPanel, name string) (Trend, bool) {
	current, ok := panel.Current()
	if !ok {
		return Trend{}, false
	}

	previous, ok := panel.Previous()
	if !ok {
		return Trend{}, false
	}

	cur, ok := current.Get(name)
	if !ok {
		return Trend{}, false
	}

	prev, ok := previous.Get(name)
	if !ok {
		return Trend{}, false
	}

	return ComputeTrend(cur.Value, prev.Value), true
}

// SeriesPoint is one reading of a test in a labelled period.
type SeriesPoint struct {
	Label string
	Value float64
}

// Series returns the readings of a test oldest first, skipping periods that
// do not report it.
func Series(panel LabPanel, name string) []SeriesPoint {
	points := make([]SeriesPoint, 0, len(panel.TimePeriods))
	for i := len(panel.TimePeriods) - 1; i >= 0; i-- {
		period := panel.TimePeriods[i]
		if v, ok := period.Get(name); ok {
			points = append(points, SeriesPoint{Label: period.Label, Value: v.Value})
		}
	}

	return points
}
