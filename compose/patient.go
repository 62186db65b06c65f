/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package compose

import (
	"strings"

	"github.com/lablens/lablens/lab"
)

var lifestyleAdvice = []string{
	"Eat more fruits, vegetables, and whole grains",
	"Choose lean proteins like fish and chicken",
	"Limit foods high in saturated fat and cholesterol",
	"Exercise regularly - aim for 30 minutes most days",
	"Maintain a healthy weight",
}

// PatientMessage builds the plain-language summary shown to patients when no
// model-generated message is available.
func PatientMessage(panel lab.LabPanel) string {
	v := viewOf(panel)
	severity := Classify(panel)

	var sb strings.Builder

	sb.WriteString("<p>")
	switch severity {
	case SeverityHigh:
		sb.WriteString("Your recent lab results show some levels that are higher than we would like to see. ")
	case SeverityBorderline:
		sb.WriteString("Your recent lab results show some levels that are borderline. ")
	default:
		sb.WriteString("Your recent lab results look good overall. ")
	}
	sb.WriteString("</p>")

	if r, ok := v.current.Get(lab.TotalCholesterol); ok && r.Status == lab.StatusHigh {
		sb.WriteString("<p>Your total cholesterol is elevated at " + measurement(r) + ". We recommend keeping this below 200 mg/dL.")
		if trend, ok := v.trendOf(lab.TotalCholesterol); ok {
			switch trend.Direction {
			case lab.DirectionDecreased:
				sb.WriteString(" The good news is it has decreased since your last test.")
			case lab.DirectionIncreased:
				sb.WriteString(" This has increased since your last test, so we need to work on bringing it down.")
			}
		}
		sb.WriteString("</p>")
	}

	if r, ok := v.current.Get(lab.LDLCholesterol); ok && r.Status == lab.StatusHigh {
		sb.WriteString("<p>Your LDL (bad) cholesterol is high at " + measurement(r) + ". This is the type of cholesterol that can build up in your arteries.")
		if trend, ok := v.trendOf(lab.LDLCholesterol); ok {
			switch trend.Direction {
			case lab.DirectionDecreased:
				sb.WriteString(" It has improved since your last test, which is encouraging.")
			case lab.DirectionIncreased:
				sb.WriteString(" This has gotten worse since your last test.")
			}
		}
		sb.WriteString("</p>")
	}

	if r, ok := v.current.Get(lab.HDLCholesterol); ok && r.Status == lab.StatusNormal {
		sb.WriteString("<p>The good news is your HDL (good) cholesterol is at a healthy level of " + measurement(r) + ".")
		if trend, ok := v.trendOf(lab.HDLCholesterol); ok && trend.Direction == lab.DirectionIncreased {
			sb.WriteString(" This has improved since your last test!")
		}
		sb.WriteString("</p>")
	}

	if v.hasPrevious {
		changes := make([]string, 0, len(v.current.Results))
		for _, r := range v.current.Results {
			trend, ok := v.trendOf(r.Name)
			if !ok {
				continue
			}
			changes = append(changes, esc(lab.DisplayName(r.Name))+" "+trend.Symbol+" "+esc(trend.Change))
		}

		sb.WriteString("<p><strong>Changes since " + esc(v.previousLabel) + ":</strong> ")
		sb.WriteString(strings.Join(changes, ", "))
		sb.WriteString("</p>")
	}

	if severity.Abnormal() {
		sb.WriteString("<p><strong>What you can do:</strong></p>")
		sb.WriteString("<ul>")
		for _, advice := range lifestyleAdvice {
			sb.WriteString("<li>" + advice + "</li>")
		}
		sb.WriteString("</ul>")
		sb.WriteString("<p>We will recheck your levels in 6-8 weeks to see how you are doing. Please call if you have any questions.</p>")
	} else {
		sb.WriteString("<p>Keep up the good work with your healthy lifestyle. We will check your levels again at your next annual visit.</p>")
	}

	return sb.String()
}

// measurement renders "value unit" with the unit escaped.
func measurement(v lab.LabValue) string {
	if v.Unit == "" {
		return formatValue(v.Value)
	}

	return formatValue(v.Value) + " " + esc(v.Unit)
}
