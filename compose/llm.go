/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package compose

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var staffPolicy = bluemonday.UGCPolicy()

// LLMPatientHTML renders model-written patient text. The text is escaped and
// every line becomes its own paragraph.
func LLMPatientHTML(text string) string {
	text = strings.ReplaceAll(strings.TrimSpace(text), "\r\n", "\n")

	var sb strings.Builder
	for _, line := range strings.Split(text, "\n") {
		sb.WriteString("<p>" + esc(line) + "</p>")
	}

	return sb.String()
}

// LLMStaffHTML renders model-written staff HTML. Code fences are removed and
// the markup is reduced to a safe subset.
func LLMStaffHTML(text string) string {
	return staffPolicy.Sanitize(stripCodeFence(text))
}

func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	if idx := strings.IndexByte(text, '\n'); idx != -1 {
		text = text[idx+1:]
	} else {
		text = strings.TrimPrefix(text, "```")
	}

	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "```"))
}
