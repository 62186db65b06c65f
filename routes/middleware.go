/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"net/http"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"

	"github.com/lablens/lablens/analyzer"
)

// Services maps the analyzer and the server's base configuration into every
// request so handlers can ask for them by type.
func Services(a *analyzer.Analyzer, base analyzer.Config) flamego.Handler {
	return func(c flamego.Context) {
		c.Map(a)
		c.Map(base)
		c.Next()
	}
}

// CSRFInjector automatically injects CSRF token into template data for all routes
func CSRFInjector() flamego.Handler {
	return func(x csrf.CSRF, data template.Data) {
		data["csrf_token"] = x.Token()
	}
}

// FlashInjector exposes the previous request's flash message to templates.
func FlashInjector() flamego.Handler {
	return func(flash session.Flash, data template.Data) {
		if msg, ok := flash.(FlashMessage); ok {
			data["Flash"] = msg
		}
	}
}

// SettingsInjector exposes the session's effective provider and model.
func SettingsInjector() flamego.Handler {
	return func(s session.Session, base analyzer.Config, data template.Data) {
		cfg := sessionConfig(s, base)
		data["Provider"] = string(cfg.Provider)
		data["Model"] = cfg.EffectiveModel()
		data["HasCredentials"] = cfg.HasCredentials()
		_, err := loadPanel(s)
		data["HasPanel"] = err == nil
	}
}

// NoCacheHeaders disables caching for all page responses and blocks indexing.
func NoCacheHeaders() flamego.Handler {
	return func(c flamego.Context) {
		header := c.ResponseWriter().Header()
		header.Set("X-Robots-Tag", "noindex, nofollow, noarchive, nosnippet")

		if c.Request().Method == http.MethodGet || c.Request().Method == http.MethodHead {
			header.Set("Cache-Control", "no-store, max-age=0")
			header.Set("Pragma", "no-cache")
			header.Set("Expires", "0")
		}

		c.Next()
	}
}
