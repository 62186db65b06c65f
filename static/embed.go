/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package static

import "embed"

// Static holds the stylesheets served from the site root. Go sources in this
// directory are not embedded.
//
//go:embed *.css
var Static embed.FS
