// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/seqharvest/internal/harvest"
	"github.com/pdiddy/seqharvest/pkg/types"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [accessions...]",
	Short: "Download specific accessions without scraping the BLDB page",
	Long: `Fetch downloads one or more nuccore accessions directly. The --from,
--to, and --strand qualifiers apply when a single accession is given;
values are passed to efetch verbatim. Output behaves like harvest: files
under --output-dir, or FASTA text on stdout.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("output-dir", "", "directory to save FASTA sequences (default: print to stdout)")
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Duration("delay", 0, "pause between consecutive sequence fetches (default 500ms)")
	fetchCmd.Flags().Int("retries", 0, "fetch attempts per sequence on connection failure (default 3)")
	fetchCmd.Flags().Duration("retry-delay", 0, "pause between retry attempts (default 1s)")
	fetchCmd.Flags().String("api-key", "", "NCBI E-utilities API key (default: .secrets/ncbi-api-key)")
	fetchCmd.Flags().Bool("no-catalog", false, "do not record fetches in the harvest catalog")
	fetchCmd.Flags().String("from", "", "sub-range start position")
	fetchCmd.Flags().String("to", "", "sub-range stop position")
	fetchCmd.Flags().String("strand", "", "strand selector (1 = plus, 2 = minus)")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("provide one or more nuccore accessions")
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	strand, _ := cmd.Flags().GetString("strand")
	if (from != "" || to != "" || strand != "") && len(args) > 1 {
		return fmt.Errorf("--from, --to, and --strand require a single accession")
	}

	accessions := make([]types.Accession, 0, len(args))
	for _, id := range args {
		acc := types.Accession{Accession: id}
		if from != "" {
			acc.FromPosition = &from
		}
		if to != "" {
			acc.ToPosition = &to
		}
		if strand != "" {
			acc.Strand = &strand
		}
		accessions = append(accessions, acc)
	}

	cfg := harvestConfig(cmd)

	store, err := openCatalog(cmd, cfg.OutputDir)
	if err != nil {
		return err
	}

	var recorder harvest.Recorder
	if store != nil {
		defer store.Close()
		recorder = store
	}

	client := &http.Client{Timeout: cfg.Timeout}

	result := harvest.HarvestBatch(context.Background(), client, accessions, cfg, recorder, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d sequence(s) failed to fetch", result.Failed)
	}
	return nil
}
