/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Status is the extractor's clinical classification of a single value.
type Status string

// Status values reported by the extractor.
const (
	StatusNormal     Status = "normal"
	StatusHigh       Status = "high"
	StatusLow        Status = "low"
	StatusBorderline Status = "borderline"
)

// CurrentLabel is the period label used when the extractor reports a single flat result set.
const CurrentLabel = "Current"

// LabValue is one measured value.
type LabValue struct {
	Value     float64 `json:"value"`
	Unit      string  `json:"unit"`
	Status    Status  `json:"status"`
	Reference string  `json:"reference"`
}

// Result is a named LabValue within a time period.
type Result struct {
	Name string
	LabValue
}

// TimePeriod is one column of lab values sharing a collection label.
type TimePeriod struct {
	Label   string
	Results []Result
}

// LabPanel is the structured result of one analyzed document.
// TimePeriods are reverse-chronological: index 0 is the most recent.
type LabPanel struct {
	LabType     string
	TimePeriods []TimePeriod
}

// Get returns the value recorded for name in this period.
func (p TimePeriod) Get(name string) (LabValue, bool) {
	for _, r := range p.Results {
		if r.Name == name {
			return r.LabValue, true
		}
	}

	return LabValue{}, false
}

// Names returns the test names in extraction order.
func (p TimePeriod) Names() []string {
	names := make([]string, 0, len(p.Results))
	for _, r := range p.Results {
		names = append(names, r.Name)
	}

	return names
}

// Current returns the most recent period, if any.
func (lp LabPanel) Current() (TimePeriod, bool) {
	if len(lp.TimePeriods) == 0 {
		return TimePeriod{}, false
	}

	return lp.TimePeriods[0], true
}

// Previous returns the period immediately before the current one, if any.
func (lp LabPanel) Previous() (TimePeriod, bool) {
	if len(lp.TimePeriods) < 2 {
		return TimePeriod{}, false
	}

	return lp.TimePeriods[1], true
}

// TestCount returns the number of tests in the current period.
func (lp LabPanel) TestCount() int {
	current, ok := lp.Current()
	if !ok {
		return 0
	}

	return len(current.Results)
}

type timePeriodJSON struct {
	Label   string                                   `json:"label"`
	Results *orderedmap.OrderedMap[string, LabValue] `json:"results"`
}

type labPanelJSON struct {
	LabType     string           `json:"labType"`
	TimePeriods []timePeriodJSON `json:"timePeriods"`
}

// MarshalJSON encodes the panel in the extractor's shape, keeping result order.
func (lp LabPanel) MarshalJSON() ([]byte, error) {
	out := labPanelJSON{
		LabType:     lp.LabType,
		TimePeriods: make([]timePeriodJSON, 0, len(lp.TimePeriods)),
	}

	for _, period := range lp.TimePeriods {
		results := orderedmap.New[string, LabValue]()
		for _, r := range period.Results {
			results.Set(r.Name, r.LabValue)
		}

		out.TimePeriods = append(out.TimePeriods, timePeriodJSON{
			Label:   period.Label,
			Results: results,
		})
	}

	return json.Marshal(out)
}

// UnmarshalJSON decodes a panel previously encoded with MarshalJSON, or any raw
// extraction, normalizing it on the way in.
func (lp *LabPanel) UnmarshalJSON(data []byte) error {
	var raw RawExtraction
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*lp = Normalize(raw)

	return nil
}
