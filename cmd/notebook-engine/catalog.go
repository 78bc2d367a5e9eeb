// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notebook-engine/internal/catalog"
	"github.com/pdiddy/notebook-engine/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the notebook catalog (index, search, list)",
	Long: `Catalog maintains a local SQLite index of converted notebooks with FTS5
full-text search over titles and prose. Use subcommands to index the
collection, search it, or list what is indexed.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index converted notebooks into the catalog",
	Long: `Index walks the notebooks directory, extracts each notebook's title and
prose, and ingests them into the catalog database. Notebooks unchanged since
the last run are skipped.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig(cmd)

	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), cfg.NotebooksDir, os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 && summary.Failed == summary.Total() {
		return fmt.Errorf("all %d notebook(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over indexed notebooks",
	Args:  cobra.ExactArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig(cmd)

	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	max, _ := cmd.Flags().GetInt("max-results")
	results, err := store.Search(context.Background(), args[0], max)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.ID
		}
		fmt.Printf("%d. %s (%s)\n   %s\n", i+1, title, r.NotebookPath, r.Snippet)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed notebooks",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	cfg := catalogConfig(cmd)

	store, err := catalog.NewStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.List(context.Background())
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Title", "Cells", "Code", "Indexed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_LEFT,
	})
	for _, r := range records {
		table.Append([]string{
			r.ID, r.Title,
			fmt.Sprintf("%d", r.Cells), fmt.Sprintf("%d", r.CodeCells),
			r.IndexedAt,
		})
	}
	table.SetFooter([]string{fmt.Sprintf("Total %d", len(records)), "", "", "", ""})
	table.Render()
	return nil
}

// catalogConfig builds catalog settings from flags and config file keys.
func catalogConfig(cmd *cobra.Command) types.CatalogConfig {
	cfg := types.CatalogConfig{
		CatalogDir:   viper.GetString("catalog.dir"),
		NotebooksDir: viper.GetString("catalog.notebooks_dir"),
		MaxResults:   viper.GetInt("catalog.max_results"),
	}
	if cfg.CatalogDir == "" {
		cfg.CatalogDir = "catalog"
	}
	if cfg.NotebooksDir == "" {
		cfg.NotebooksDir = "notebooks"
	}
	if v, _ := cmd.Flags().GetString("catalog-dir"); v != "" {
		cfg.CatalogDir = v
	}
	if v, _ := cmd.Flags().GetString("notebooks-dir"); v != "" {
		cfg.NotebooksDir = v
	}
	return cfg
}

func init() {
	for _, c := range []*cobra.Command{catalogIndexCmd, catalogSearchCmd, catalogListCmd} {
		c.Flags().String("catalog-dir", "", "catalog base directory (default: catalog)")
		c.Flags().String("notebooks-dir", "", "notebook tree to index (default: notebooks)")
	}
	catalogSearchCmd.Flags().Int("max-results", 0, "maximum results (default from config, 20)")
	catalogSearchCmd.Flags().Bool("json", false, "emit results as JSON")

	catalogCmd.AddCommand(catalogIndexCmd, catalogSearchCmd, catalogListCmd)
	rootCmd.AddCommand(catalogCmd)
}
