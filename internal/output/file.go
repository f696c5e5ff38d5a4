package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/inodb/clinvar-txt/internal/clinvar"
)

// FileName returns the name of the processed output file for a release.
func FileName(meta clinvar.Metadata) string {
	return fmt.Sprintf("clinvar_%s_%s_processed.txt.gz", meta.GenomeReference, meta.ReleaseDate)
}

// FileWriter writes the gzip-compressed output into a temporary file and
// moves it to its final name on Commit. Until then nothing is visible under
// the output name.
type FileWriter struct {
	*TabWriter

	dir  string
	file *os.File
	gz   *gzip.Writer
	done bool
}

// NewFileWriter creates a temporary output file in dir and writes the header.
func NewFileWriter(dir string) (*FileWriter, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	f, err := os.CreateTemp(dir, ".clinvar-*.txt.gz.tmp")
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	// CreateTemp uses 0600; the committed file is for other readers too.
	if err := f.Chmod(0644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return nil, fmt.Errorf("set output file mode: %w", err)
	}

	gz := gzip.NewWriter(f)
	fw := &FileWriter{
		TabWriter: NewTabWriter(gz),
		dir:       dir,
		file:      f,
		gz:        gz,
	}

	if err := fw.WriteHeader(); err != nil {
		fw.Abort()
		return nil, fmt.Errorf("write header: %w", err)
	}

	return fw, nil
}

// Commit flushes and closes the output and renames it to FileName(meta)
// inside the output directory. It returns the final path.
func (fw *FileWriter) Commit(meta clinvar.Metadata) (string, error) {
	if fw.done {
		return "", fmt.Errorf("output already finished")
	}

	if err := fw.Flush(); err != nil {
		fw.Abort()
		return "", fmt.Errorf("flush output: %w", err)
	}
	if err := fw.gz.Close(); err != nil {
		fw.Abort()
		return "", fmt.Errorf("close gzip stream: %w", err)
	}
	if err := fw.file.Close(); err != nil {
		fw.Abort()
		return "", fmt.Errorf("close output file: %w", err)
	}

	dest := filepath.Join(fw.dir, FileName(meta))
	if err := os.Rename(fw.file.Name(), dest); err != nil {
		fw.Abort()
		return "", fmt.Errorf("rename output file: %w", err)
	}
	fw.done = true

	return dest, nil
}

// Abort discards the temporary output file. It is a no-op after Commit.
func (fw *FileWriter) Abort() {
	if fw.done {
		return
	}
	fw.done = true
	fw.gz.Close()
	fw.file.Close()
	os.Remove(fw.file.Name())
}
