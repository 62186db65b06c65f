/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package compose

import (
	"html"
	"strconv"

	"github.com/lablens/lablens/lab"
)

// Severity is the overall classification of the current period.
type Severity string

// Severity values, from most to least urgent.
const (
	SeverityHigh       Severity = "high"
	SeverityBorderline Severity = "borderline"
	SeverityNormal     Severity = "normal"
)

// Abnormal reports whether the severity warrants follow-up advice.
func (s Severity) Abnormal() bool {
	return s == SeverityHigh || s == SeverityBorderline
}

// Classify returns high if any current value is high, borderline if any is
// borderline, and normal otherwise.
func Classify(panel lab.LabPanel) Severity {
	current, ok := panel.Current()
	if !ok {
		return SeverityNormal
	}

	hasBorderline := false
	for _, r := range current.Results {
		switch r.Status {
		case lab.StatusHigh:
			return SeverityHigh
		case lab.StatusBorderline:
			hasBorderline = true
		}
	}

	if hasBorderline {
		return SeverityBorderline
	}

	return SeverityNormal
}

// panelView is the current/previous pair every template works from.
type panelView struct {
	current       lab.TimePeriod
	previous      lab.TimePeriod
	hasPrevious   bool
	currentLabel  string
	previousLabel string
}

func viewOf(panel lab.LabPanel) panelView {
	v := panelView{currentLabel: lab.CurrentLabel}

	if current, ok := panel.Current(); ok {
		v.current = current
		if current.Label != "" {
			v.currentLabel = current.Label
		}
	}

	if previous, ok := panel.Previous(); ok {
		v.previous = previous
		v.hasPrevious = true
		v.previousLabel = previous.Label
	}

	return v
}

// trendOf returns the trend for name when both periods report it.
func (v panelView) trendOf(name string) (lab.Trend, bool) {
	if !v.hasPrevious {
		return lab.Trend{}, false
	}

	cur, ok := v.current.Get(name)
	if !ok {
		return lab.Trend{}, false
	}

	prev, ok := v.previous.Get(name)
	if !ok {
		return lab.Trend{}, false
	}

	return lab.ComputeTrend(cur.Value, prev.Value), true
}

func esc(s string) string {
	return html.EscapeString(s)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
