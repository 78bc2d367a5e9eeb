// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notebook-engine/internal/slug"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

var renameCmd = &cobra.Command{
	Use:   "rename <dir>",
	Short: "Slugify notebook filenames in a directory",
	Long: `Rename rewrites .ipynb basenames directly under dir to a consistent slug
form: lowercase, diacritics folded, punctuation dropped, spaces and hyphens
as underscores. Collisions are skipped with a warning.`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	cfg := types.RenameConfig{Dir: args[0], DryRun: dryRun}

	_, err := slug.Rename(cfg, os.Stdout)
	return err
}

func init() {
	renameCmd.Flags().Bool("dry-run", false, "print the rename plan without touching files")

	rootCmd.AddCommand(renameCmd)
}
