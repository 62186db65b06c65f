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

	"github.com/lablens/lablens/compose"
)

// Results renders the session panel with trends and charts
func Results(c flamego.Context, s session.Session, t template.Template, data template.Data) {
	stored, err := loadPanel(s)
	if err != nil {
		SetInfoFlash(s, "Upload a lab report to see results")
		c.Redirect("/", http.StatusSeeOther)

		return
	}

	data["IsResults"] = true
	data["Panel"] = stored.Panel
	data["Stored"] = stored
	data["ResultsHTML"] = htmltemplate.HTML(compose.ResultsHTML(stored.Panel))
	data["Severity"] = string(compose.Classify(stored.Panel))

	if stored.Degraded() {
		data["FallbackNotice"] = fallbackNotice(stored.Reason)
	}

	charts, err := trendCharts(stored.Panel)
	if err != nil {
		webLogger.Warn("Failed to render trend charts", "error", err)
	} else {
		data["Charts"] = charts
	}

	t.HTML(http.StatusOK, "results")
}
