package duckdb

import (
	"fmt"
	"os"
	"time"

	"github.com/inodb/clinvar-txt/internal/clinvar"
)

// FileFingerprint holds stat-based identity for a file.
type FileFingerprint struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// StatFile creates a FileFingerprint from an on-disk file.
func StatFile(path string) (FileFingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileFingerprint{}, err
	}
	return FileFingerprint{
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}

// Release describes one imported ClinVar file.
type Release struct {
	Metadata clinvar.Metadata
	Source   FileFingerprint
}

// WriteRelease records the header metadata and the source file of an import.
func (s *Store) WriteRelease(meta clinvar.Metadata, src FileFingerprint) error {
	_, err := s.db.Exec(`INSERT INTO clinvar_release VALUES (?, ?, ?, ?, ?)`,
		meta.GenomeReference, meta.ReleaseDate, src.Path, src.Size, src.ModTime.UTC())
	if err != nil {
		return fmt.Errorf("insert release: %w", err)
	}
	return nil
}

// Releases returns all recorded imports in insertion order.
func (s *Store) Releases() ([]Release, error) {
	rows, err := s.db.Query(`SELECT genome_reference, release_date, source_path, source_size, source_mtime
		FROM clinvar_release`)
	if err != nil {
		return nil, fmt.Errorf("query releases: %w", err)
	}
	defer rows.Close()

	var releases []Release
	for rows.Next() {
		var r Release
		if err := rows.Scan(
			&r.Metadata.GenomeReference, &r.Metadata.ReleaseDate,
			&r.Source.Path, &r.Source.Size, &r.Source.ModTime,
		); err != nil {
			return nil, fmt.Errorf("scan release: %w", err)
		}
		releases = append(releases, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate releases: %w", err)
	}
	return releases, nil
}
