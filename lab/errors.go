/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package lab

import "errors"

var (
	// ErrNoJSONObject is returned when the model response contains no JSON object.
	ErrNoJSONObject = errors.New("no JSON object in response")
	// ErrInvalidExtraction is returned when the embedded JSON does not match the panel shape.
	ErrInvalidExtraction = errors.New("invalid lab extraction")
)
