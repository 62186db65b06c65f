/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package compose

import (
	"strings"

	"github.com/lablens/lablens/lab"
)

// ResultsHTML renders the current period's values with status, trend against
// the previous period and reference range.
func ResultsHTML(panel lab.LabPanel) string {
	v := viewOf(panel)

	var sb strings.Builder

	sb.WriteString("<h3>" + esc(panel.LabType) + "</h3>")

	if len(panel.TimePeriods) > 1 {
		sb.WriteString(`<div class="time-periods-header">`)
		sb.WriteString(`<span class="current-period">` + esc(v.current.Label) + `</span>`)
		sb.WriteString(`<span class="previous-period">` + esc(v.previousLabel) + `</span>`)
		sb.WriteString(`</div>`)
	}

	for _, r := range v.current.Results {
		status := esc(string(r.Status))

		sb.WriteString(`<div class="result-item">`)
		sb.WriteString(`<span class="result-name">` + esc(lab.DisplayName(r.Name)) + `</span>`)
		sb.WriteString(`<div class="result-value">`)
		sb.WriteString(`<span class="value">` + measurement(r.LabValue) + `</span>`)
		sb.WriteString(`<span class="status ` + status + `">` + status + `</span>`)

		if trend, ok := v.trendOf(r.Name); ok {
			sb.WriteString(`<span class="trend ` + string(trend.Direction) + `">` + trend.Symbol + " " + esc(trend.Change) + `</span>`)
		}

		sb.WriteString(`<span class="reference">Ref: ` + esc(r.Reference) + `</span>`)
		sb.WriteString(`</div>`)
		sb.WriteString(`</div>`)
	}

	return sb.String()
}
