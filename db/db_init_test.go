// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"errors"
	"os"
	"testing"
)

func TestInitRequiresDatabaseURL(t *testing.T) {
	if err := Init(testContext(), ""); !errors.Is(err, ErrDatabaseURLNotSet) {
		t.Fatalf("expected ErrDatabaseURLNotSet, got %v", err)
	}
}

func TestInitInvalidDatabaseURL(t *testing.T) {
	if err := Init(testContext(), "postgres://"); err == nil {
		t.Fatalf("expected error for invalid database url")
	}
}

func TestOpenMigrationDBRequiresURL(t *testing.T) {
	if _, err := OpenMigrationDB(""); !errors.Is(err, ErrDatabaseURLNotSet) {
		t.Fatalf("expected ErrDatabaseURLNotSet, got %v", err)
	}
}

func TestGetPoolAndClose(t *testing.T) {
	requireDatabase(t)

	if GetPool() == nil || !Enabled() {
		t.Fatalf("expected pool to be initialized")
	}

	baseURL := os.Getenv("DATABASE_URL")

	Close()

	if Enabled() {
		t.Fatalf("expected store to be disabled after Close")
	}

	if err := initTestPool(testContext(), baseURL, testSchemaName); err != nil {
		t.Fatalf("failed to re-init pool: %v", err)
	}
}

func TestSyncSchema(t *testing.T) {
	requireDatabase(t)

	searchPathURL, err := withSearchPath(os.Getenv("DATABASE_URL"), testSchemaName)
	if err != nil {
		t.Fatalf("withSearchPath failed: %v", err)
	}

	if err := SyncSchema(testContext(), searchPathURL); err != nil {
		t.Fatalf("SyncSchema failed: %v", err)
	}
}
