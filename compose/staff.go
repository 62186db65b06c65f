/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package compose

import (
	"strings"

	"github.com/lablens/lablens/lab"
)

// StatinThreshold is the LDL value (mg/dL) above which statin therapy is suggested.
const StatinThreshold = 160

// StaffMessage builds the clinical summary shown to staff when no
// model-generated message is available.
func StaffMessage(panel lab.LabPanel) string {
	v := viewOf(panel)
	severity := Classify(panel)

	var sb strings.Builder

	sb.WriteString("<p><strong>" + esc(panel.LabType) + " Results (" + esc(v.currentLabel) + "):</strong></p><ul>")
	for _, r := range v.current.Results {
		status := ""
		if r.Status != lab.StatusNormal {
			status = " (" + esc(strings.ToUpper(string(r.Status))) + ")"
		}

		sb.WriteString("<li>" + esc(lab.DisplayName(r.Name)) + ": " + measurement(r.LabValue) + status +
			" [Ref: " + esc(r.Reference) + "]</li>")
	}
	sb.WriteString("</ul>")

	if v.hasPrevious {
		sb.WriteString("<p><strong>Trends since " + esc(v.previousLabel) + ":</strong></p><ul>")
		for _, r := range v.current.Results {
			prev, ok := v.previous.Get(r.Name)
			if !ok {
				continue
			}

			trend := lab.ComputeTrend(r.Value, prev.Value)

			var description string
			switch trend.Direction {
			case lab.DirectionIncreased:
				description = "increased by " + esc(trend.Change)
			case lab.DirectionDecreased:
				description = "decreased by " + esc(trend.Change)
			default:
				description = "stable"
			}

			sb.WriteString("<li>" + esc(lab.DisplayName(r.Name)) + ": " + formatValue(prev.Value) + " → " +
				measurement(r.LabValue) + " (" + description + ")</li>")
		}
		sb.WriteString("</ul>")
	}

	if !severity.Abnormal() {
		sb.WriteString("<p><strong>Assessment:</strong> Results within normal limits</p>")
		if v.hasPrevious {
			sb.WriteString("<p><strong>Trend Assessment:</strong> Stable/improving profile</p>")
		}
		sb.WriteString("<p><strong>Plan:</strong> Continue current lifestyle, recheck annually</p>")

		return sb.String()
	}

	ldl, hasLDL := v.current.Get(lab.LDLCholesterol)
	total, hasTotal := v.current.Get(lab.TotalCholesterol)

	sb.WriteString("<p><strong>Clinical Significance:</strong></p><ul>")
	if hasLDL && ldl.Status == lab.StatusHigh {
		sb.WriteString("<li>Elevated LDL-C increases cardiovascular risk</li>")
	}
	if hasTotal && total.Status == lab.StatusHigh {
		sb.WriteString("<li>Total cholesterol &gt;200 mg/dL associated with increased CHD risk</li>")
	}
	if trend, ok := v.trendOf(lab.LDLCholesterol); ok {
		switch trend.Direction {
		case lab.DirectionIncreased:
			sb.WriteString("<li>Worsening LDL trend indicates need for intervention escalation</li>")
		case lab.DirectionDecreased:
			sb.WriteString("<li>Improving LDL trend suggests current interventions are effective</li>")
		}
	}
	sb.WriteString("</ul>")

	sb.WriteString("<p><strong>Recommendations:</strong></p><ul>")
	sb.WriteString("<li>Lifestyle modifications: diet, exercise, weight management</li>")
	sb.WriteString("<li>Recheck panel in 6-8 weeks</li>")
	if hasLDL && ldl.Value > StatinThreshold {
		sb.WriteString("<li>Consider statin therapy if lifestyle changes insufficient</li>")
	}
	sb.WriteString("<li>Assess other cardiovascular risk factors</li>")
	if v.hasPrevious {
		sb.WriteString("<li>Monitor trends to assess intervention effectiveness</li>")
	}
	sb.WriteString("</ul>")

	return sb.String()
}
