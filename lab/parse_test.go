// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package lab

import (
	"errors"
	"testing"
)

func TestExtractJSONObject(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		text    string
		want    string
		wantErr error
	}{
		{
			name: "bare object",
			text: `{"a":1}`,
			want: `{"a":1}`,
		},
		{
			name: "fenced with prose",
			text: "Here you go:\n```json\n{\"labType\":\"CBC\",\"results\":{}}\n```\nLet me know.",
			want: `{"labType":"CBC","results":{}}`,
		},
		{
			name: "braces inside strings",
			text: `note {"reference":"{weird}","value":1} trailing }`,
			want: `{"reference":"{weird}","value":1}`,
		},
		{
			name: "first balanced object wins",
			text: `{"a":{"b":1}} then {"c":2}`,
			want: `{"a":{"b":1}}`,
		},
		{
			name:    "invalid first object is not skipped",
			text:    `{not json} {"ok":true}`,
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "broken outer object hides nested objects",
			text:    `{"labType":"Lipid", note: oops, "timePeriods":[{"label":"Now","results":{}}]}`,
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "no object",
			text:    "I could not read this image.",
			wantErr: ErrNoJSONObject,
		},
		{
			name:    "unbalanced",
			text:    `{"a":`,
			wantErr: ErrNoJSONObject,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ExtractJSONObject(tt.text)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseExtraction(t *testing.T) {
	t.Parallel()

	text := "```json\n" + `{
  "labType": "Lipid Panel",
  "timePeriods": [
    {"label": "Current", "results": {
      "totalCholesterol": {"value": 240, "unit": "mg/dL", "status": "high", "reference": "<200"},
      "hdlCholesterol": {"value": 45, "unit": "mg/dL", "status": "normal", "reference": ">40"}
    }}
  ]
}` + "\n```"

	panel, err := ParseExtraction(text)
	if err != nil {
		t.Fatalf("ParseExtraction failed: %v", err)
	}

	if panel.LabType != "Lipid Panel" {
		t.Fatalf("expected lab type, got %q", panel.LabType)
	}

	if panel.TestCount() != 2 {
		t.Fatalf("expected 2 tests, got %d", panel.TestCount())
	}

	v, ok := panel.TimePeriods[0].Get(TotalCholesterol)
	if !ok || v.Status != StatusHigh || v.Value != 240 {
		t.Fatalf("unexpected total cholesterol: %+v", v)
	}
}

func TestParseExtractionRejectsWrongShape(t *testing.T) {
	t.Parallel()

	if _, err := ParseExtraction(`{"timePeriods": "soon"}`); !errors.Is(err, ErrInvalidExtraction) {
		t.Fatalf("expected ErrInvalidExtraction, got %v", err)
	}

	if _, err := ParseExtraction("nothing here"); !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v", err)
	}
}

func TestParseExtractionBrokenReplyFails(t *testing.T) {
	t.Parallel()

	text := `{"labType":"Lipid", note: oops, "timePeriods":[` +
		`{"label":"Now","results":{"ldlCholesterol":{"value":170}}},` +
		`{"label":"Before","results":{"ldlCholesterol":{"value":150}}}]}`

	panel, err := ParseExtraction(text)
	if !errors.Is(err, ErrNoJSONObject) {
		t.Fatalf("expected ErrNoJSONObject, got %v with panel %+v", err, panel)
	}
}

func TestParseExtractionRejectsNaN(t *testing.T) {
	t.Parallel()

	text := `{"timePeriods":[{"label":"Now","results":{"ldlCholesterol":{"value":"NaN"}}}]}`
	if _, err := ParseExtraction(text); !errors.Is(err, ErrInvalidExtraction) {
		t.Fatalf("expected ErrInvalidExtraction, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	t.Parallel()

	if got := DisplayName(LDLCholesterol); got != "LDL Cholesterol" {
		t.Fatalf("expected LDL Cholesterol, got %q", got)
	}

	if got := DisplayName("vitaminD"); got != "vitaminD" {
		t.Fatalf("expected unknown key to pass through, got %q", got)
	}
}
