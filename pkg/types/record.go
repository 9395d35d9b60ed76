// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// FetchStatus indicates the outcome of one sequence fetch.
type FetchStatus string

const (
	FetchDownloaded FetchStatus = "downloaded"
	FetchSkipped    FetchStatus = "skipped"
	FetchFailed     FetchStatus = "failed"
)

// SequenceRecord holds metadata for one harvested sequence: the accession
// and its qualifiers, the efetch URL that was dereferenced, and where the
// FASTA text ended up. It is written as a YAML sidecar next to the
// sequence file and recorded in the harvest catalog.
type SequenceRecord struct {
	Accession `yaml:",inline"`

	// FetchURL is the efetch locator the sequence was retrieved from.
	FetchURL string `json:"fetch_url" yaml:"fetch_url"`

	// FastaPath is the local path of the saved FASTA file. Empty when the
	// sequence was printed to stdout instead of saved.
	FastaPath string `json:"fasta_path,omitempty" yaml:"fasta_path,omitempty"`

	// Bytes is the size of the fetched sequence text.
	Bytes int `json:"bytes" yaml:"bytes"`

	// Status records the fetch outcome.
	Status FetchStatus `json:"status" yaml:"status"`

	// FetchedAt is when the fetch completed.
	FetchedAt time.Time `json:"fetched_at" yaml:"fetched_at"`
}
