// Package vcf provides streaming access to gzip-compressed VCF files.
package vcf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// LineReader yields the decompressed lines of a VCF file one at a time.
// It is not restartable: reading the file again requires a new LineReader.
type LineReader struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
	closed     bool
}

// Open opens a gzip-compressed file for line-by-line reading.
// The caller must Close the returned reader.
func Open(path string) (*LineReader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vcf file: %w", err)
	}

	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("create gzip reader: %w", err)
	}

	return &LineReader{
		reader:     bufio.NewReaderSize(gz, 1<<16),
		file:       file,
		gzipReader: gz,
	}, nil
}

// NewLineReader creates a reader over an already-decompressed stream.
func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{reader: bufio.NewReader(r)}
}

// Next returns the next line with its line terminator removed.
// It returns io.EOF once the stream is exhausted.
func (r *LineReader) Next() (string, error) {
	if r.closed {
		return "", io.EOF
	}

	line, err := r.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", io.EOF
			}
			// Last line without a trailing newline.
			r.lineNumber++
			return strings.TrimRight(line, "\r"), nil
		}
		return "", fmt.Errorf("read line %d: %w", r.lineNumber+1, err)
	}
	r.lineNumber++

	return strings.TrimRight(line, "\r\n"), nil
}

// LineNumber returns the number of lines read so far.
func (r *LineReader) LineNumber() int {
	return r.lineNumber
}

// Close releases the gzip stream and the underlying file.
// It is safe to call Close more than once.
func (r *LineReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	var err error
	if r.gzipReader != nil {
		err = r.gzipReader.Close()
	}
	if r.file != nil {
		if cerr := r.file.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// CountLines decompresses the file at path and returns its line count.
func CountLines(path string) (int, error) {
	r, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	for {
		if _, err := r.Next(); err != nil {
			if errors.Is(err, io.EOF) {
				return r.LineNumber(), nil
			}
			return 0, err
		}
	}
}

// ParseError represents an error during VCF parsing with line context.
type ParseError struct {
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("vcf parse error at line %d: %s", e.Line, e.Message)
}
