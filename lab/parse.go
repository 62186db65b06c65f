/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSONObject returns the first balanced {...} substring of text when it
// is valid JSON. Otherwise the span from the first '{' to the last '}' is
// tried. Objects nested inside an invalid first candidate are never returned.
func ExtractJSONObject(text string) (string, error) {
	first := strings.IndexByte(text, '{')
	if first == -1 {
		return "", ErrNoJSONObject
	}

	if end := matchBrace(text, first); end != -1 {
		if candidate := text[first : end+1]; gjson.Valid(candidate) {
			return candidate, nil
		}
	}

	if last := strings.LastIndexByte(text, '}'); last > first {
		if candidate := text[first : last+1]; gjson.Valid(candidate) {
			return candidate, nil
		}
	}

	return "", ErrNoJSONObject
}

// matchBrace returns the index of the brace closing the one at start, or -1.
// Braces inside JSON strings are ignored.
func matchBrace(text string, start int) int {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		ch := text[i]

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}

			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// ParseExtraction pulls the embedded JSON object out of a model response and
// normalizes it into a panel.
func ParseExtraction(text string) (LabPanel, error) {
	obj, err := ExtractJSONObject(text)
	if err != nil {
		return LabPanel{}, err
	}

	var raw RawExtraction
	if err := json.Unmarshal([]byte(obj), &raw); err != nil {
		return LabPanel{}, fmt.Errorf("%w: %w", ErrInvalidExtraction, err)
	}

	return Normalize(raw), nil
}
