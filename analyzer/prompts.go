/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import (
	"encoding/json"
	"fmt"

	"github.com/lablens/lablens/lab"
)

const analysisPrompt = `
Analyze this lab results image and extract ALL available data from ALL time periods/columns. Return in this JSON format:

{
  "labType": "Type of lab panel (e.g., Lipid Panel, Basic Metabolic Panel, etc.)",
  "timePeriods": [
    {
      "label": "time_period_label (e.g., '2 wk ago', '3 mo ago', 'Current', etc.)",
      "results": {
        "testName": {
          "value": numeric_value,
          "unit": "unit_of_measurement",
          "status": "normal|high|low|borderline",
          "reference": "reference_range"
        }
      }
    }
  ]
}

IMPORTANT:
- Look for ALL columns of data with different time periods
- Extract data from EVERY column you can see (e.g., "2 wk ago", "3 mo ago", etc.)
- If there's only one column, still use the timePeriods array with one entry
- Use the exact time period labels from the image
- For each lab value, determine if it's normal, high, low, or borderline based on standard reference ranges

Common lab panels to look for:
- Lipid Panel: Total Cholesterol, LDL, HDL, Triglycerides
- Basic Metabolic Panel: Glucose, Sodium, Potassium, Chloride, CO2, BUN, Creatinine
- Liver Function: ALT, AST, Bilirubin, Alkaline Phosphatase
- Thyroid: TSH, T3, T4
- Complete Blood Count: WBC, RBC, Hemoglobin, Hematocrit, Platelets

Use camelCase for test names in the JSON (e.g., totalCholesterol, ldlCholesterol).
Only return the JSON object, no additional text.
`

// documentTextPrompt wraps text extracted from a PDF for providers that
// cannot read the file directly.
const documentTextPrompt = "\nThe lab report was supplied as a PDF. Its extracted text follows:\n\n%s\n"

const patientPromptTemplate = `You are a healthcare provider explaining lab results to a patient.

GUIDELINES:
- Keep response to 3-4 paragraphs
- Use 6th-8th grade reading level
- Be warm, caring, and reassuring
- Get straight to the point - no greetings like "Hi there"
- Focus on most significant findings
- Include trend information if available
- Provide specific, actionable lifestyle recommendations
- Include follow-up timeline
- End with warm reassurance to contact office with questions
- Do NOT end with questions

LAB DATA:
%s

Generate a caring, comprehensive message that covers:
1. Direct overall assessment of results
2. Key findings in simple terms with trends (if multiple time periods)
3. Specific lifestyle recommendations based on the results:
   - Diet suggestions (foods to eat more/less of)
   - Exercise recommendations
   - Other lifestyle changes if relevant
4. Follow-up plan and timeline
5. End with reassuring reminder to contact office with any questions

Tailor recommendations to the specific lab values. For example:
- High cholesterol: Mediterranean diet, omega-3 foods, reduce saturated fats
- High blood sugar: limit refined carbs, increase fiber
- Normal results: continue current healthy habits

Start directly with the results. End with something like "Please contact our office if you have any questions." Return only the message content, no additional formatting.`

const staffPromptTemplate = `You are generating a clinical communication for healthcare staff.

GUIDELINES:
- Use bullet point format with comprehensive clinical details
- Be technical and precise with medical terminology
- Include all relevant clinical information healthcare staff need
- Use clinical abbreviations appropriately
- Structure:
    - Results
    - Trends
    - Assessment
    - Plan
    - Follow-up
- Include risk stratification and clinical significance
- make sure output is formatted nicely and easy to read, succinct.

LAB DATA:
%s

Generate a comprehensive clinical message with this structure:

• **Results:** [Complete values with reference ranges and status indicators]
• **Trends:** [Detailed changes with percentages and clinical significance if multiple periods]
• **Risk Assessment:** [Cardiovascular risk, metabolic risk, clinical significance]
• **Clinical Significance:** [Pathophysiology, guideline references, risk stratification]
• **Therapeutic Plan:** [Specific interventions - lifestyle, medications, monitoring]
• **Follow-up:** [Timeline, specific tests, monitoring parameters]
• **Patient Education:** [Key points discussed/to discuss with patient]
• **Documentation:** [ICD codes, billing considerations if relevant]

Include details like:
- Framingham risk factors if applicable
- Guideline references (AHA/ACC, ADA, etc.)
- Medication considerations and contraindications
- Lifestyle modification specifics
- Monitoring frequency and parameters
- Red flags or concerning trends

Use HTML formatting. Be thorough and clinically comprehensive. Return only the message content.`

func panelJSON(panel lab.LabPanel) (string, error) {
	data, err := json.MarshalIndent(panel, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode lab panel: %w", err)
	}

	return string(data), nil
}

func patientPrompt(panel lab.LabPanel) (string, error) {
	data, err := panelJSON(panel)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(patientPromptTemplate, data), nil
}

func staffPrompt(panel lab.LabPanel) (string, error) {
	data, err := panelJSON(panel)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(staffPromptTemplate, data), nil
}
