// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package efetch builds NCBI E-utilities efetch locators for nuccore
// accession records.
package efetch

import (
	"fmt"

	"github.com/pdiddy/seqharvest/pkg/types"
)

// Base is the efetch endpoint. Declared as a var so tests can substitute
// an httptest server.
var Base = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"

// FetchURL returns the efetch locator for one accession: nuccore database,
// FASTA return type, plain-text return mode. Both range bounds must be
// present for the seq_start/seq_stop pair to be appended; the strand
// qualifier is appended independently. Values are carried verbatim, with
// no numeric validation and no reordering of an inverted range.
//
// The accession is interpolated without escaping, matching what the source
// page provides. An accession containing reserved URL characters would
// produce a malformed locator; the page has never emitted one.
func FetchURL(acc types.Accession, apiKey string) string {
	u := fmt.Sprintf("%s?db=nuccore&id=%s&rettype=fasta&retmode=text", Base, acc.Accession)

	if acc.HasRange() {
		u += fmt.Sprintf("&seq_start=%s&seq_stop=%s", *acc.FromPosition, *acc.ToPosition)
	}
	if acc.HasStrand() {
		u += "&strand=" + *acc.Strand
	}
	if apiKey != "" {
		u += "&api_key=" + apiKey
	}
	return u
}
