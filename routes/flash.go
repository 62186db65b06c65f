/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import (
	"encoding/gob"

	"github.com/flamego/session"

	"github.com/lablens/lablens/analyzer"
)

// FlashType represents the type of flash message
type FlashType string

const (
	FlashError   FlashType = "error"
	FlashSuccess FlashType = "success"
	FlashWarning FlashType = "warning"
	FlashInfo    FlashType = "info"
)

// FlashMessage represents a flash message to be displayed to the user
type FlashMessage struct {
	Type    FlashType
	Message string
}

func init() {
	// Register FlashMessage with gob for session serialization
	gob.Register(FlashMessage{})
}

// SetErrorFlash sets an error flash message in the session
func SetErrorFlash(s session.Session, message string) {
	s.SetFlash(FlashMessage{
		Type:    FlashError,
		Message: message,
	})
}

// SetSuccessFlash sets a success flash message in the session
func SetSuccessFlash(s session.Session, message string) {
	s.SetFlash(FlashMessage{
		Type:    FlashSuccess,
		Message: message,
	})
}

// SetWarningFlash sets a warning flash message in the session
func SetWarningFlash(s session.Session, message string) {
	s.SetFlash(FlashMessage{
		Type:    FlashWarning,
		Message: message,
	})
}

// SetInfoFlash sets an info flash message in the session
func SetInfoFlash(s session.Session, message string) {
	s.SetFlash(FlashMessage{
		Type:    FlashInfo,
		Message: message,
	})
}

// fallbackNotice explains a degraded analysis to the user.
func fallbackNotice(reason analyzer.FallbackReason) string {
	switch reason {
	case analyzer.ReasonMissingAPIKey:
		return "No API key is configured for the selected provider. Showing sample data."
	case analyzer.ReasonUnsupportedProvider:
		return "The selected provider cannot analyze documents. Showing sample data."
	case analyzer.ReasonUnsupportedDocument:
		return "This file type could not be analyzed. Upload a PNG, JPEG, GIF, WEBP or PDF. Showing sample data."
	case analyzer.ReasonParseError:
		return "The model reply could not be read. Showing sample data."
	case analyzer.ReasonEmptyResponse:
		return "The model returned an empty reply. Showing sample data."
	}

	return "The model could not be reached. Showing sample data."
}
