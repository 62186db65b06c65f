/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

// Canonical keys for the lipid tests the message templates know about.
const (
	TotalCholesterol = "totalCholesterol"
	LDLCholesterol   = "ldlCholesterol"
	HDLCholesterol   = "hdlCholesterol"
	Triglycerides    = "triglycerides"
	CholesterolRatio = "cholesterolRatio"
)

var displayNames = map[string]string{
	TotalCholesterol: "Total Cholesterol",
	LDLCholesterol:   "LDL Cholesterol",
	HDLCholesterol:   "HDL Cholesterol",
	Triglycerides:    "Triglycerides",
	CholesterolRatio: "Cholesterol Ratio",
}

// DisplayName returns the human-readable label for a test key. Unknown keys
// are returned unchanged.
func DisplayName(key string) string {
	if name, ok := displayNames[key]; ok {
		return name
	}

	return key
}
