// Package clinvar extracts simplified variant records from ClinVar VCF files.
package clinvar

import "strings"

// Missing is the placeholder written for annotations absent from a record.
const Missing = "."

// Record is one accepted ClinVar variant, reduced to the output columns.
// All fields are kept as the strings found in the VCF.
type Record struct {
	Chrom        string // Chromosome name (e.g., "1", "chrX")
	Pos          string // 1-based position, not validated
	Ref          string // Reference allele
	Alt          string // Alternate allele
	ID           string // ClinVar variation ID (VCF ID column)
	ClinSig      string // CLNSIG
	ReviewStatus string // CLNREVSTAT
	Stars        string // confidence tier derived from ReviewStatus
	Disease      string // CLNDN with underscores replaced by spaces
	AlleleID     string // ALLELEID
	DbSNP        string // RS
}

// NewRecord returns a record with every annotation set to its default.
func NewRecord(chrom, pos, id, ref, alt string) Record {
	return Record{
		Chrom:        chrom,
		Pos:          pos,
		Ref:          ref,
		Alt:          alt,
		ID:           id,
		ClinSig:      Missing,
		ReviewStatus: Missing,
		Stars:        "0",
		Disease:      Missing,
		AlleleID:     Missing,
		DbSNP:        Missing,
	}
}

// Fields returns the output columns in their fixed order.
func (r Record) Fields() []string {
	return []string{
		r.Chrom,
		r.Pos,
		r.Ref,
		r.Alt,
		r.ID,
		r.ClinSig,
		r.ReviewStatus,
		r.Stars,
		r.Disease,
		r.AlleleID,
		r.DbSNP,
	}
}

// String returns the record as a tab-delimited row without a line terminator.
func (r Record) String() string {
	return strings.Join(r.Fields(), "\t")
}

// Metadata holds the file-level values found in the VCF header.
type Metadata struct {
	GenomeReference string // from ##reference=
	ReleaseDate     string // from ##fileDate=, digits only
}
