package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"strconv"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/clinvar-txt/internal/clinvar"
)

// WriteRecords batch-inserts records into DuckDB using the Appender API.
func (s *Store) WriteRecords(records []clinvar.Record) error {
	if len(records) == 0 {
		return nil
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "clinvar_variants")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for _, r := range records {
		stars, err := strconv.ParseInt(r.Stars, 10, 8)
		if err != nil {
			return fmt.Errorf("invalid stars %q for %s:%s: %w", r.Stars, r.Chrom, r.Pos, err)
		}
		if err := appender.AppendRow(
			r.Chrom, r.Pos, r.Ref, r.Alt, r.ID,
			r.ClinSig, r.ReviewStatus, int8(stars),
			r.Disease, r.AlleleID, r.DbSNP,
		); err != nil {
			return fmt.Errorf("append record: %w", err)
		}
	}

	return appender.Flush()
}

// Clear removes all records and releases.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM clinvar_variants"); err != nil {
		return err
	}
	_, err := s.db.Exec("DELETE FROM clinvar_release")
	return err
}

// LookupVariant returns the stored records at a position with the given alleles.
func (s *Store) LookupVariant(chrom, pos, ref, alt string) ([]clinvar.Record, error) {
	rows, err := s.db.Query(`SELECT
		chrom, pos, ref, alt, clinvar_id,
		clin_sig, review_status, stars,
		disease, allele_id, dbsnp_id
		FROM clinvar_variants
		WHERE chrom=? AND pos=? AND ref=? AND alt=?`,
		chrom, pos, ref, alt)
	if err != nil {
		return nil, fmt.Errorf("query variant: %w", err)
	}
	defer rows.Close()

	var records []clinvar.Record
	for rows.Next() {
		var r clinvar.Record
		var stars int8
		if err := rows.Scan(
			&r.Chrom, &r.Pos, &r.Ref, &r.Alt, &r.ID,
			&r.ClinSig, &r.ReviewStatus, &stars,
			&r.Disease, &r.AlleleID, &r.DbSNP,
		); err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		r.Stars = strconv.Itoa(int(stars))
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate variants: %w", err)
	}
	return records, nil
}

// CountByStars returns the number of stored records per star tier.
func (s *Store) CountByStars() (map[int]int64, error) {
	rows, err := s.db.Query(`SELECT stars, count(*) FROM clinvar_variants GROUP BY stars`)
	if err != nil {
		return nil, fmt.Errorf("query star counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[int]int64)
	for rows.Next() {
		var stars int8
		var n int64
		if err := rows.Scan(&stars, &n); err != nil {
			return nil, fmt.Errorf("scan star count: %w", err)
		}
		counts[int(stars)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate star counts: %w", err)
	}
	return counts, nil
}
