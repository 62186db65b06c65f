/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

// MockLabType marks panels built from canned data.
const MockLabType = "Lipid Panel (MOCK DATA)"

// MockPanel returns the canned lipid panel shown when no model result is
// available. Each call returns a fresh copy.
func MockPanel() LabPanel {
	return LabPanel{
		LabType: MockLabType,
		TimePeriods: []TimePeriod{
			{
				Label: "2 wk ago",
				Results: []Result{
					{Name: TotalCholesterol, LabValue: LabValue{Value: 180, Unit: "mg/dL", Status: StatusNormal, Reference: "<200"}},
					{Name: LDLCholesterol, LabValue: LabValue{Value: 95, Unit: "mg/dL", Status: StatusNormal, Reference: "<130"}},
					{Name: HDLCholesterol, LabValue: LabValue{Value: 55, Unit: "mg/dL", Status: StatusNormal, Reference: ">40"}},
					{Name: Triglycerides, LabValue: LabValue{Value: 85, Unit: "mg/dL", Status: StatusNormal, Reference: "<150"}},
				},
			},
			{
				Label: "3 mo ago",
				Results: []Result{
					{Name: TotalCholesterol, LabValue: LabValue{Value: 190, Unit: "mg/dL", Status: StatusNormal, Reference: "<200"}},
					{Name: LDLCholesterol, LabValue: LabValue{Value: 105, Unit: "mg/dL", Status: StatusNormal, Reference: "<130"}},
					{Name: HDLCholesterol, LabValue: LabValue{Value: 50, Unit: "mg/dL", Status: StatusNormal, Reference: ">40"}},
					{Name: Triglycerides, LabValue: LabValue{Value: 95, Unit: "mg/dL", Status: StatusNormal, Reference: "<150"}},
				},
			},
		},
	}
}
