/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package routes

import "errors"

var (
	errNoPanel         = errors.New("no lab panel in session")
	errMissingUpload   = errors.New("no file uploaded")
	errUnknownProvider = errors.New("unknown provider")
)
