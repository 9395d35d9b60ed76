// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Accession identifies one nuccore sequence record, plus the optional
// sub-range and strand qualifiers carried by the source link it was
// extracted from. Qualifier fields are nil when the link carried no such
// parameter; an empty string is never stored. Records are treated as
// immutable once built and are never merged across link occurrences.
type Accession struct {
	// Accession is the nuccore identifier (e.g. "KY587659.1").
	Accession string `json:"accession" yaml:"accession"`

	// FromPosition and ToPosition bound a sub-sequence range. They are
	// carried verbatim from the source link; no numeric validation is
	// performed and one may be present without the other.
	FromPosition *string `json:"from_position,omitempty" yaml:"from_position,omitempty"`
	ToPosition   *string `json:"to_position,omitempty" yaml:"to_position,omitempty"`

	// Strand is the orientation token ("1" or "2" in practice), opaque here.
	Strand *string `json:"strand,omitempty" yaml:"strand,omitempty"`
}

// HasRange reports whether both range bounds are present and non-empty.
// A lone bound is carried but never turned into a range qualifier.
func (a Accession) HasRange() bool {
	return a.FromPosition != nil && *a.FromPosition != "" &&
		a.ToPosition != nil && *a.ToPosition != ""
}

// HasStrand reports whether a non-empty strand qualifier is present.
func (a Accession) HasStrand() bool {
	return a.Strand != nil && *a.Strand != ""
}
