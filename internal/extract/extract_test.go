// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"reflect"
	"testing"

	"github.com/pdiddy/seqharvest/pkg/types"
)

func ptr(s string) *string { return &s }

func TestAccessions(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   []types.Accession
	}{
		{
			name:   "no links",
			markup: `<html><body><p>No sequences here.</p></body></html>`,
			want:   []types.Accession{},
		},
		{
			name:   "bare accession",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/KY587659.1">KY587659</a>`,
			want:   []types.Accession{{Accession: "KY587659.1"}},
		},
		{
			name:   "all qualifiers",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/ABC123?from=10&to=50&strand=2">link</a>`,
			want: []types.Accession{{
				Accession:    "ABC123",
				FromPosition: ptr("10"),
				ToPosition:   ptr("50"),
				Strand:       ptr("2"),
			}},
		},
		{
			name:   "repeated key first wins",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/ABC123?from=10&from=99&to=50">link</a>`,
			want: []types.Accession{{
				Accession:    "ABC123",
				FromPosition: ptr("10"),
				ToPosition:   ptr("50"),
			}},
		},
		{
			name:   "unknown keys ignored",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/ABC123?report=fasta&strand=1">link</a>`,
			want: []types.Accession{{
				Accession: "ABC123",
				Strand:    ptr("1"),
			}},
		},
		{
			name:   "empty value counts as absent",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/ABC123?from=&to=50">link</a>`,
			want: []types.Accession{{
				Accession:  "ABC123",
				ToPosition: ptr("50"),
			}},
		},
		{
			name:   "lone from is carried without to",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/ABC123?from=10">link</a>`,
			want: []types.Accession{{
				Accession:    "ABC123",
				FromPosition: ptr("10"),
			}},
		},
		{
			name:   "url-decoded value",
			markup: `<a href="http://www.ncbi.nlm.nih.gov/nuccore/ABC123?strand=%32">link</a>`,
			want: []types.Accession{{
				Accession: "ABC123",
				Strand:    ptr("2"),
			}},
		},
		{
			name: "order and duplicates preserved",
			markup: `<td><a href="http://www.ncbi.nlm.nih.gov/nuccore/A1">x</a></td>` +
				`<td><a href="http://www.ncbi.nlm.nih.gov/nuccore/B2?from=1&to=9">y</a></td>` +
				`<td><a href="http://www.ncbi.nlm.nih.gov/nuccore/A1">x</a></td>`,
			want: []types.Accession{
				{Accession: "A1"},
				{Accession: "B2", FromPosition: ptr("1"), ToPosition: ptr("9")},
				{Accession: "A1"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Accessions(tt.markup)
			if !reflect.DeepEqual(derefAll(got), derefAll(tt.want)) {
				t.Errorf("Accessions() = %+v, want %+v", derefAll(got), derefAll(tt.want))
			}
		})
	}
}

func TestAccessionsIdempotent(t *testing.T) {
	markup := `<a href="http://www.ncbi.nlm.nih.gov/nuccore/KY587659.1?from=3&to=900&strand=1">a</a>` +
		`<a href="http://www.ncbi.nlm.nih.gov/nuccore/MF150120.1">b</a>`

	first := Accessions(markup)
	second := Accessions(markup)
	if !reflect.DeepEqual(derefAll(first), derefAll(second)) {
		t.Errorf("repeated extraction differs: %+v vs %+v", derefAll(first), derefAll(second))
	}
}

// flatAccession mirrors types.Accession with pointers collapsed to
// comparable values so DeepEqual failures print readable diffs.
type flatAccession struct {
	acc, from, to, strand     string
	hasFrom, hasTo, hasStrand bool
}

func derefAll(accs []types.Accession) []flatAccession {
	out := make([]flatAccession, 0, len(accs))
	for _, a := range accs {
		f := flatAccession{acc: a.Accession}
		if a.FromPosition != nil {
			f.hasFrom, f.from = true, *a.FromPosition
		}
		if a.ToPosition != nil {
			f.hasTo, f.to = true, *a.ToPosition
		}
		if a.Strand != nil {
			f.hasStrand, f.strand = true, *a.Strand
		}
		out = append(out, f)
	}
	return out
}
