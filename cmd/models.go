/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/lablens/lablens/analyzer"
)

var CmdModels = newModelsCommand()

func newModelsCommand() *cli.Command {
	return &cli.Command{
		Name:   "models",
		Usage:  "List the selectable vision models",
		Action: listModels,
	}
}

func listModels(_ context.Context, cmd *cli.Command) error {
	for _, m := range analyzer.AvailableModels() {
		fmt.Fprintf(cmd.Root().Writer, "%-32s %s\n", m.ID, m.Name)
	}

	return nil
}
