/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/cmd"
	"github.com/lablens/lablens/logging"
)

func main() {
	logging.Init()

	// A missing .env is fine; configuration can come from the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("failed to load .env: %v", err)
	}

	app := &cli.Command{
		Name:  "lablens",
		Usage: "LabLens - lab report analysis",
		Commands: []*cli.Command{
			cmd.CmdStart,
			cmd.CmdAnalyze,
			cmd.CmdModels,
			cmd.CmdMigrate,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
