// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/seqharvest/internal/catalog"
	"github.com/pdiddy/seqharvest/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the harvest catalog (list, summary)",
	Long: `Catalog reads the SQLite log of past fetches. Every harvest and fetch
run with an output directory appends one row per accession; list shows the
most recent rows and summary counts outcomes.`,
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent catalog rows, newest first",
	RunE:  runCatalogList,
}

var catalogSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count cataloged fetches by outcome",
	RunE:  runCatalogSummary,
}

func init() {
	catalogCmd.PersistentFlags().String("output-dir", "", "harvest output directory holding the catalog")
	catalogListCmd.Flags().Int("limit", 0, "maximum rows to show (default 20)")
	catalogListCmd.Flags().Bool("json", false, "output rows as JSON")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSummaryCmd)
	rootCmd.AddCommand(catalogCmd)
}

func openExistingCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("harvest.output_dir")
	}
	if outputDir == "" {
		return nil, fmt.Errorf("no output directory: pass --output-dir or set harvest.output_dir")
	}
	return catalog.NewStore(types.CatalogConfig{
		CatalogDir: filepath.Join(outputDir, "catalog"),
	})
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openExistingCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Println("Catalog is empty.")
		return nil
	}

	fmt.Printf("%-20s  %-12s  %-8s  %-20s  %s\n", "Accession", "Status", "Bytes", "Fetched", "Path")
	for _, rec := range records {
		fetched := ""
		if !rec.FetchedAt.IsZero() {
			fetched = rec.FetchedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Printf("%-20s  %-12s  %-8d  %-20s  %s\n",
			rec.Accession.Accession, rec.Status, rec.Bytes, fetched, rec.FastaPath)
	}
	return nil
}

func runCatalogSummary(cmd *cobra.Command, args []string) error {
	store, err := openExistingCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	sum, err := store.Summarize(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("downloaded: %d\nskipped:    %d\nfailed:     %d\ntotal:      %d\n",
		sum.Downloaded, sum.Skipped, sum.Failed, sum.Total())
	return nil
}
