// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package efetch

import (
	"strings"
	"testing"

	"github.com/pdiddy/seqharvest/pkg/types"
)

func ptr(s string) *string { return &s }

func TestFetchURL(t *testing.T) {
	tests := []struct {
		name   string
		acc    types.Accession
		apiKey string
		want   string
	}{
		{
			name: "accession only",
			acc:  types.Accession{Accession: "X1"},
			want: Base + "?db=nuccore&id=X1&rettype=fasta&retmode=text",
		},
		{
			name: "range without strand",
			acc:  types.Accession{Accession: "X1", FromPosition: ptr("5"), ToPosition: ptr("20")},
			want: Base + "?db=nuccore&id=X1&rettype=fasta&retmode=text&seq_start=5&seq_stop=20",
		},
		{
			name: "strand without range",
			acc:  types.Accession{Accession: "X1", Strand: ptr("2")},
			want: Base + "?db=nuccore&id=X1&rettype=fasta&retmode=text&strand=2",
		},
		{
			name: "range and strand",
			acc: types.Accession{
				Accession:    "KY587659.1",
				FromPosition: ptr("3"),
				ToPosition:   ptr("905"),
				Strand:       ptr("1"),
			},
			want: Base + "?db=nuccore&id=KY587659.1&rettype=fasta&retmode=text&seq_start=3&seq_stop=905&strand=1",
		},
		{
			name: "lone from bound yields no range pair",
			acc:  types.Accession{Accession: "X1", FromPosition: ptr("5")},
			want: Base + "?db=nuccore&id=X1&rettype=fasta&retmode=text",
		},
		{
			name: "inverted range carried verbatim",
			acc:  types.Accession{Accession: "X1", FromPosition: ptr("20"), ToPosition: ptr("5")},
			want: Base + "?db=nuccore&id=X1&rettype=fasta&retmode=text&seq_start=20&seq_stop=5",
		},
		{
			name:   "api key appended last",
			acc:    types.Accession{Accession: "X1", Strand: ptr("1")},
			apiKey: "k123",
			want:   Base + "?db=nuccore&id=X1&rettype=fasta&retmode=text&strand=1&api_key=k123",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FetchURL(tt.acc, tt.apiKey)
			if got != tt.want {
				t.Errorf("FetchURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFetchURLSegmentCounts(t *testing.T) {
	acc := types.Accession{Accession: "X1", FromPosition: ptr("5"), ToPosition: ptr("20")}
	got := FetchURL(acc, "")

	if n := strings.Count(got, "seq_start=5&seq_stop=20"); n != 1 {
		t.Errorf("range segment appears %d times, want 1 in %q", n, got)
	}
	if strings.Contains(got, "strand=") {
		t.Errorf("unexpected strand segment in %q", got)
	}
}
