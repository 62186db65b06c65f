/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package analyzer

import "errors"

var (
	errMissingAPIKey          = errors.New("no API key configured for provider")
	errUnsupportedProvider    = errors.New("provider does not support model calls")
	errEmptyResponse          = errors.New("model returned an empty response")
	errOllamaURLRequired      = errors.New("OLLAMA_URL is required for the ollama provider")
	errPDFHasNoText           = errors.New("PDF contains no extractable text")
	errDocumentTooLarge       = errors.New("document exceeds maximum upload size")
	errEmptyDocument          = errors.New("document is empty")
	ErrUnsupportedDocument    = errors.New("unsupported document type")
	errProviderStatus         = errors.New("provider returned non-success status")
	errInvalidProviderTimeout = errors.New("timeout must not be negative")
)
