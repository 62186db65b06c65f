/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	htmltemplate "html/template"
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/lablens/lablens/analyzer"
)

// PatientMessage generates the patient-facing summary of the session panel
func PatientMessage(c flamego.Context, s session.Session, t template.Template, data template.Data, a *analyzer.Analyzer, base analyzer.Config) {
	renderMessage(c, s, t, data, a, base, analyzer.KindPatientMessage)
}

// StaffMessage generates the clinical summary of the session panel
func StaffMessage(c flamego.Context, s session.Session, t template.Template, data template.Data, a *analyzer.Analyzer, base analyzer.Config) {
	renderMessage(c, s, t, data, a, base, analyzer.KindStaffMessage)
}

func renderMessage(c flamego.Context, s session.Session, t template.Template, data template.Data, a *analyzer.Analyzer, base analyzer.Config, kind analyzer.Kind) {
	stored, err := loadPanel(s)
	if err != nil {
		SetInfoFlash(s, "Upload a lab report before generating messages")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	cfg := sessionConfig(s, base)

	var out analyzer.MessageOutcome
	if kind == analyzer.KindPatientMessage {
		out = a.PatientMessage(c.Request().Context(), cfg, stored.Panel)
		data["Title"] = "Patient message"
	} else {
		out = a.StaffMessage(c.Request().Context(), cfg, stored.Panel)
		data["Title"] = "Staff message"
	}

	data["IsResults"] = true
	data["Kind"] = string(kind)
	data["Message"] = htmltemplate.HTML(out.HTML)
	data["Outcome"] = out

	if out.Degraded() {
		data["FallbackNotice"] = "Generated from templates because the model was unavailable (" + string(out.FallbackReason) + ")."
	}

	t.HTML(http.StatusOK, "message")
}
