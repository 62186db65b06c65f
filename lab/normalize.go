/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/lablens/lablens/logging"
)

var labLogger = logging.Logger(logging.SourceLLM)

// RawExtraction is the JSON object returned by the extractor. It carries either
// the timePeriods array or the legacy flat results map.
type RawExtraction struct {
	LabType     string          `json:"labType"`
	TimePeriods []RawTimePeriod `json:"timePeriods"`
	Results     RawResults      `json:"results"`
}

// RawTimePeriod is one extracted period before normalization.
type RawTimePeriod struct {
	Label   string     `json:"label"`
	Results RawResults `json:"results"`
}

// RawResults maps test names to values in the order they were extracted.
// A nil entry means the extractor emitted null for that test.
type RawResults struct {
	*orderedmap.OrderedMap[string, *RawLabValue]
}

// UnmarshalJSON keeps key order from the source object.
func (r *RawResults) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		r.OrderedMap = nil
		return nil
	}

	om := orderedmap.New[string, *RawLabValue]()
	if err := json.Unmarshal(data, om); err != nil {
		return err
	}

	r.OrderedMap = om

	return nil
}

// Len returns the number of entries, nil-safe.
func (r RawResults) Len() int {
	if r.OrderedMap == nil {
		return 0
	}

	return r.OrderedMap.Len()
}

// RawLabValue is a value as extracted. Value accepts JSON numbers and numeric
// strings. Other strings such as "<5" or "N/A" mark the entry as unreadable
// instead of failing the whole extraction.
type RawLabValue struct {
	Value     FlexFloat `json:"value"`
	Unit      string    `json:"unit"`
	Status    string    `json:"status"`
	Reference string    `json:"reference"`

	// Unreadable holds the quoted value text when it was not a number.
	Unreadable string `json:"-"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *RawLabValue) UnmarshalJSON(data []byte) error {
	type plain RawLabValue

	var aux struct {
		plain
		Value json.RawMessage `json:"value"`
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*v = RawLabValue(aux.plain)

	if len(aux.Value) == 0 {
		return nil
	}

	err := v.Value.UnmarshalJSON(aux.Value)

	var notNumeric *notNumericError
	if errors.As(err, &notNumeric) {
		v.Unreadable = strconv.Quote(notNumeric.text)
		return nil
	}

	return err
}

type notNumericError struct {
	text string
}

func (e *notNumericError) Error() string {
	return fmt.Sprintf("%s: value %q is not numeric", ErrInvalidExtraction, e.text)
}

func (e *notNumericError) Unwrap() error {
	return ErrInvalidExtraction
}

// FlexFloat decodes a JSON number or a string holding a number. NaN and
// infinities are rejected.
type FlexFloat float64

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*f = 0
		return nil
	}

	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return &notNumericError{text: s}
		}

		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: value %q is not finite", ErrInvalidExtraction, s)
		}

		*f = FlexFloat(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}

	*f = FlexFloat(v)

	return nil
}

// Normalize maps a raw extraction to the canonical panel shape. A non-empty
// timePeriods array wins; otherwise a flat results map becomes a single
// "Current" period; otherwise the panel has no periods. Values are not
// validated.
func Normalize(raw RawExtraction) LabPanel {
	panel := LabPanel{LabType: raw.LabType}

	switch {
	case len(raw.TimePeriods) > 0:
		panel.TimePeriods = make([]TimePeriod, 0, len(raw.TimePeriods))
		for _, rp := range raw.TimePeriods {
			panel.TimePeriods = append(panel.TimePeriods, TimePeriod{
				Label:   rp.Label,
				Results: normalizeResults(rp.Results),
			})
		}
	case raw.Results.OrderedMap != nil:
		panel.TimePeriods = []TimePeriod{{
			Label:   CurrentLabel,
			Results: normalizeResults(raw.Results),
		}}
	default:
		panel.TimePeriods = []TimePeriod{}
	}

	return panel
}

func normalizeResults(raw RawResults) []Result {
	results := make([]Result, 0, raw.Len())
	if raw.OrderedMap == nil {
		return results
	}

	for pair := raw.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			continue
		}

		if pair.Value.Unreadable != "" {
			labLogger.Warn("Dropping non-numeric lab value", "test", pair.Key, "value", pair.Value.Unreadable)
			continue
		}

		results = append(results, Result{
			Name: pair.Key,
			LabValue: LabValue{
				Value:     float64(pair.Value.Value),
				Unit:      pair.Value.Unit,
				Status:    Status(pair.Value.Status),
				Reference: pair.Value.Reference,
			},
		})
	}

	return results
}
