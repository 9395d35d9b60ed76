// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package harvest downloads FASTA sequences for extracted accessions and
// persists them with metadata records.
package harvest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/seqharvest/internal/efetch"
	"github.com/pdiddy/seqharvest/internal/extract"
	"github.com/pdiddy/seqharvest/internal/httputil"
	"github.com/pdiddy/seqharvest/pkg/types"
)

const (
	rawDir      = "raw"
	metadataDir = "metadata"
)

// Recorder receives one row per processed accession. The harvest catalog
// implements it; a nil Recorder disables cataloging.
type Recorder interface {
	Record(ctx context.Context, rec types.SequenceRecord) error
}

// BatchResult holds the outcome of a batch harvest run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
	Records    []types.SequenceRecord
}

// Total returns the total number of accessions processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any sequences failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// SourcePage fetches the reference page listing the accession links. Any
// transport error or non-2xx status is fatal for the whole run; the retry
// policy applies only to individual sequence fetches.
func SourcePage(ctx context.Context, client *http.Client, cfg types.HarvestConfig) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.SourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching source page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("source page returned HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading source page: %w", err)
	}
	return string(body), nil
}

// HarvestSequence handles one accession: if the FASTA file already exists
// it skips the download, otherwise it builds the efetch locator, fetches
// with retry, and persists the sequence plus a YAML metadata sidecar. With
// no output directory configured the sequence text is written to w instead.
// The returned record's Status reports the outcome.
func HarvestSequence(ctx context.Context, client *http.Client, acc types.Accession, cfg types.HarvestConfig, w io.Writer) (types.SequenceRecord, error) {
	rec := types.SequenceRecord{
		Accession: acc,
		FetchURL:  efetch.FetchURL(acc, cfg.APIKey),
	}

	var fastaPath string
	if cfg.OutputDir != "" {
		fastaPath = filepath.Join(cfg.OutputDir, rawDir, acc.Accession+".fasta")
		if _, err := os.Stat(fastaPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", acc.Accession)
			rec.FastaPath = fastaPath
			rec.Status = types.FetchSkipped
			return rec, nil
		}
	}

	fmt.Fprintf(w, "fetching: %s\n", acc.Accession)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rec.FetchURL, nil)
	if err != nil {
		rec.Status = types.FetchFailed
		return rec, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	body, err := httputil.FetchWithRetry(ctx, client, req, cfg.Retries, cfg.RetryDelay, w)
	if err != nil {
		rec.Status = types.FetchFailed
		return rec, fmt.Errorf("fetching %s: %w", acc.Accession, err)
	}

	rec.Bytes = len(body)
	rec.FetchedAt = time.Now().UTC()
	rec.Status = types.FetchDownloaded

	if cfg.OutputDir == "" {
		fmt.Fprint(w, body)
		return rec, nil
	}

	for _, dir := range []string{
		filepath.Join(cfg.OutputDir, rawDir),
		filepath.Join(cfg.OutputDir, metadataDir),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			rec.Status = types.FetchFailed
			return rec, fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := writeSequence(fastaPath, body); err != nil {
		rec.Status = types.FetchFailed
		return rec, fmt.Errorf("writing %s: %w", acc.Accession, err)
	}
	rec.FastaPath = fastaPath

	metaPath := filepath.Join(cfg.OutputDir, metadataDir, acc.Accession+".yaml")
	if err := writeMetadata(rec, metaPath); err != nil {
		fmt.Fprintf(w, "  warning: metadata write failed for %s: %v\n", acc.Accession, err)
	}

	fmt.Fprintf(w, "saved: %s (%d bytes)\n", fastaPath, rec.Bytes)
	return rec, nil
}

// HarvestBatch processes accessions strictly in the given order, printing
// per-item status and returning a summary. Individual failures never abort
// the batch; only consecutive network fetches are separated by the
// configured delay, so skipped accessions cost nothing.
func HarvestBatch(ctx context.Context, client *http.Client, accessions []types.Accession, cfg types.HarvestConfig, recorder Recorder, w io.Writer) BatchResult {
	var result BatchResult
	fetched := false

	for _, acc := range accessions {
		if fetched && cfg.FetchDelay > 0 {
			time.Sleep(cfg.FetchDelay)
		}

		rec, err := HarvestSequence(ctx, client, acc, cfg, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", acc.Accession, err)
			result.Failed++
			fetched = true
		case rec.Status == types.FetchSkipped:
			result.Skipped++
		default:
			result.Downloaded++
			fetched = true
		}
		result.Records = append(result.Records, rec)

		if recorder != nil {
			if recErr := recorder.Record(ctx, rec); recErr != nil {
				fmt.Fprintf(w, "  warning: catalog write failed for %s: %v\n", acc.Accession, recErr)
			}
		}
	}

	fmt.Fprintf(w, "\nHarvest summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		result.Downloaded, result.Skipped, result.Failed, result.Total())
	return result
}

// Run fetches the reference page, extracts its accession links, and
// harvests them. A page with no links is a clean no-op, not an error.
func Run(ctx context.Context, client *http.Client, cfg types.HarvestConfig, recorder Recorder, w io.Writer) (BatchResult, error) {
	page, err := SourcePage(ctx, client, cfg)
	if err != nil {
		return BatchResult{}, err
	}

	accessions := extract.Accessions(page)
	if len(accessions) == 0 {
		fmt.Fprintln(w, "no accession links found")
		return BatchResult{}, nil
	}

	fmt.Fprintf(w, "found %d accession links\n", len(accessions))
	return HarvestBatch(ctx, client, accessions, cfg, recorder, w), nil
}

// writeSequence writes body to path via a temp file, renaming on success
// so a partial download never lands under the final name.
func writeSequence(path, body string) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".harvest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := io.WriteString(tmpFile, body)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing sequence: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// writeMetadata writes the sequence record to a YAML sidecar.
func writeMetadata(rec types.SequenceRecord, path string) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
