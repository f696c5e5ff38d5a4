// Package output provides writers for the processed ClinVar flat file.
package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/inodb/clinvar-txt/internal/clinvar"
)

// Columns are the output header names, in row order.
var Columns = []string{
	"chr",
	"pos",
	"ref",
	"alt",
	"clinvar_id",
	"clin_sig",
	"review_status",
	"stars",
	"disease",
	"allele_id",
	"dbsnp_id",
}

// TabWriter writes records in tab-delimited format.
type TabWriter struct {
	w     *bufio.Writer
	count int
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(Columns, "\t") + "\n")
	return err
}

// Write writes a single record as one newline-terminated row.
func (tw *TabWriter) Write(rec clinvar.Record) error {
	if _, err := tw.w.WriteString(rec.String()); err != nil {
		return err
	}
	tw.count++
	return tw.w.WriteByte('\n')
}

// Count returns the number of records written.
func (tw *TabWriter) Count() int {
	return tw.count
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}
