// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract scans reference-page markup for NCBI nuccore links and
// turns each one into an accession record.
package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/pdiddy/seqharvest/pkg/types"
)

// nuccorePattern matches the sequence links the BLDB page emits. Every
// accession is linked as http://www.ncbi.nlm.nih.gov/nuccore/<id>, sometimes
// with ?from=&to=&strand= qualifiers; the closing double quote of the href
// attribute terminates the match. This is deliberately a single textual
// pattern rather than an HTML parse — the page shape is stable and narrow,
// and a shape change only requires updating this one pattern.
var nuccorePattern = regexp.MustCompile(`http://www\.ncbi\.nlm\.nih\.gov/nuccore/([^"]+)`)

// Accessions returns one record per nuccore link in the markup, in source
// order. Duplicate links produce duplicate records; the caller decides
// whether multiplicity matters. Zero links yield an empty slice.
func Accessions(markup string) []types.Accession {
	matches := nuccorePattern.FindAllStringSubmatch(markup, -1)
	accessions := make([]types.Accession, 0, len(matches))
	for _, m := range matches {
		accessions = append(accessions, parseReference(m[1]))
	}
	return accessions
}

// parseReference splits a matched link tail into the accession identifier
// and its optional qualifiers. Everything left of the first '?' is the
// identifier; the remainder is a standard query string from which only
// from, to, and strand are read (first occurrence wins, other keys are
// ignored, empty values count as absent).
func parseReference(ref string) types.Accession {
	id, rawQuery, found := strings.Cut(ref, "?")
	acc := types.Accession{Accession: id}
	if !found {
		return acc
	}

	// ParseQuery keeps the pairs it could decode when it hits a malformed
	// one; a broken qualifier just stays absent.
	params, _ := url.ParseQuery(rawQuery)
	acc.FromPosition = firstValue(params, "from")
	acc.ToPosition = firstValue(params, "to")
	acc.Strand = firstValue(params, "strand")
	return acc
}

// firstValue returns the first value for key, or nil when the key is absent
// or its first value is empty.
func firstValue(params url.Values, key string) *string {
	vs := params[key]
	if len(vs) == 0 || vs[0] == "" {
		return nil
	}
	v := vs[0]
	return &v
}
