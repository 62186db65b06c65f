/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import "errors"

var (
	errDatabaseURLRequired   = errors.New("database-url is required (set via --database-url or DATABASE_URL env var)")
	errMigrationNameRequired = errors.New("migration name is required")
	errFileRequired          = errors.New("a lab report file is required")
	errUnknownProvider       = errors.New("provider must be one of: openai, openrouter, anthropic, gemini, ollama, mock")
)
