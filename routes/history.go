/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/flamego"
	"github.com/flamego/template"

	"github.com/lablens/lablens/db"
)

const historyLimit = 50

// Overridable in tests.
var (
	historyEnabledFn = db.Enabled
	historyListFn    = db.ListEvents
	historyStatsFn   = db.GetEventStats
)

// History lists recent analysis events when the event store is enabled
func History(c flamego.Context, t template.Template, data template.Data) {
	data["IsHistory"] = true

	if !historyEnabledFn() {
		data["StoreDisabled"] = true
		t.HTML(http.StatusOK, "history")

		return
	}

	ctx := c.Request().Context()

	events, err := historyListFn(ctx, historyLimit)
	if err != nil {
		webLogger.Error("Failed to list analysis events", "error", err)
		data["Error"] = "Failed to load history"
	} else {
		data["Events"] = events
	}

	stats, err := historyStatsFn(ctx)
	if err != nil {
		webLogger.Error("Failed to load event stats", "error", err)
	} else {
		data["Stats"] = stats
	}

	t.HTML(http.StatusOK, "history")
}
