// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notebook-engine/internal/repair"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

var repairCmd = &cobra.Command{
	Use:   "repair <dir>",
	Short: "Normalize notebook files missing outputs or execution counts",
	Long: `Repair recursively finds .ipynb files and ensures every code cell carries
an outputs list and an execution_count key, rewriting only changed files.
Colab refuses notebooks missing either field.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepair,
}

func runRepair(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")
	cfg := types.RepairConfig{Dir: args[0], Verbose: verbose}

	result, err := repair.Run(cfg, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() && result.Fixed == 0 && result.OK == 0 {
		return fmt.Errorf("all %d notebook(s) failed repair", result.Failed)
	}
	return nil
}

func init() {
	repairCmd.Flags().Bool("verbose", false, "print one line per notebook, including unchanged ones")

	rootCmd.AddCommand(repairCmd)
}
