// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/seqharvest/internal/catalog"
	"github.com/pdiddy/seqharvest/internal/harvest"
	"github.com/pdiddy/seqharvest/internal/secrets"
	"github.com/pdiddy/seqharvest/pkg/types"
)

const (
	defaultSourceURL  = "http://www.bldb.eu/BLDB.php"
	defaultTimeout    = 60 * time.Second
	defaultFetchDelay = 500 * time.Millisecond
	defaultRetries    = 3
	defaultRetryDelay = 1 * time.Second
	defaultUserAgent  = "seqharvest/0.1"
)

var harvestCmd = &cobra.Command{
	Use:   "harvest",
	Short: "Scrape the BLDB page and download every linked sequence",
	Long: `Harvest fetches the BLDB reference page, extracts all NCBI nuccore
accession links in page order, and downloads each sequence as FASTA text.
Sequences whose output file already exists are skipped. One failing
accession never stops the rest of the batch; only an unreachable reference
page aborts the run.`,
	RunE: runHarvest,
}

func init() {
	harvestCmd.Flags().String("output-dir", "", "directory to save FASTA sequences (default: print to stdout)")
	harvestCmd.Flags().String("source-url", "", "reference page to scrape (default: BLDB home page)")
	harvestCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	harvestCmd.Flags().Duration("delay", 0, "pause between consecutive sequence fetches (default 500ms)")
	harvestCmd.Flags().Int("retries", 0, "fetch attempts per sequence on connection failure (default 3)")
	harvestCmd.Flags().Duration("retry-delay", 0, "pause between retry attempts (default 1s)")
	harvestCmd.Flags().String("api-key", "", "NCBI E-utilities API key (default: .secrets/ncbi-api-key)")
	harvestCmd.Flags().Bool("no-catalog", false, "do not record fetches in the harvest catalog")

	rootCmd.AddCommand(harvestCmd)
}

// harvestConfig resolves the harvest settings from flags, the config file,
// and built-in defaults, in that order.
func harvestConfig(cmd *cobra.Command) types.HarvestConfig {
	cfg := types.HarvestConfig{
		HTTPConfig: types.HTTPConfig{UserAgent: defaultUserAgent},
	}

	cfg.SourceURL, _ = cmd.Flags().GetString("source-url")
	if cfg.SourceURL == "" {
		cfg.SourceURL = viper.GetString("harvest.source_url")
	}
	if cfg.SourceURL == "" {
		cfg.SourceURL = defaultSourceURL
	}

	cfg.OutputDir, _ = cmd.Flags().GetString("output-dir")
	if cfg.OutputDir == "" {
		cfg.OutputDir = viper.GetString("harvest.output_dir")
	}

	cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	if cfg.Timeout == 0 {
		cfg.Timeout = viper.GetDuration("harvest.timeout")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}

	cfg.FetchDelay, _ = cmd.Flags().GetDuration("delay")
	if cfg.FetchDelay == 0 {
		cfg.FetchDelay = viper.GetDuration("harvest.fetch_delay")
	}
	if cfg.FetchDelay == 0 {
		cfg.FetchDelay = defaultFetchDelay
	}

	cfg.Retries, _ = cmd.Flags().GetInt("retries")
	if cfg.Retries == 0 {
		cfg.Retries = viper.GetInt("harvest.retries")
	}
	if cfg.Retries == 0 {
		cfg.Retries = defaultRetries
	}

	cfg.RetryDelay, _ = cmd.Flags().GetDuration("retry-delay")
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = viper.GetDuration("harvest.retry_delay")
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	apiKey, _ := cmd.Flags().GetString("api-key")
	cfg.APIKey = secretDefault(secrets.NCBIAPIKey, apiKey)

	return cfg
}

// openCatalog opens the harvest catalog under the output directory, or
// returns nil when cataloging is disabled or nothing is persisted.
func openCatalog(cmd *cobra.Command, outputDir string) (*catalog.Store, error) {
	noCatalog, _ := cmd.Flags().GetBool("no-catalog")
	if noCatalog || outputDir == "" {
		return nil, nil
	}
	return catalog.NewStore(types.CatalogConfig{
		CatalogDir: filepath.Join(outputDir, "catalog"),
	})
}

func runHarvest(cmd *cobra.Command, args []string) error {
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

	result, err := harvest.Run(context.Background(), client, cfg, recorder, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d sequence(s) failed to fetch", result.Failed)
	}
	return nil
}
