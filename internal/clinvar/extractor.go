package clinvar

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/clinvar-txt/internal/vcf"
)

// minColumns is the number of VCF columns up to and including INFO.
const minColumns = 8

// Stats counts what happened to the lines of one input file.
type Stats struct {
	Lines    int // all lines read
	Header   int // lines starting with '#'
	Variants int // data lines
	Accepted int // records passed to the caller
	Skipped  int // data lines dropped for a non-primary chromosome
}

// Result is the fully buffered output of ExtractAll.
type Result struct {
	Records  []Record
	Metadata Metadata
	Stats    Stats
}

// Extractor turns ClinVar VCF lines into Records.
type Extractor struct {
	logger   *zap.Logger
	progress Observer
	prescan  bool
}

// NewExtractor creates an extractor with no logging and no progress output.
func NewExtractor() *Extractor {
	return &Extractor{
		logger:   zap.NewNop(),
		progress: NopObserver{},
	}
}

// SetLogger sets the logger for info and debug messages.
func (e *Extractor) SetLogger(l *zap.Logger) {
	e.logger = l
}

// SetProgress sets the progress observer.
func (e *Extractor) SetProgress(o Observer) {
	e.progress = o
}

// SetPrescan configures whether Extract counts the lines of the input before
// reading it, so the progress observer knows the total.
func (e *Extractor) SetPrescan(prescan bool) {
	e.prescan = prescan
}

// Extract reads the gzip-compressed VCF at path and calls fn for every
// accepted record, in input order. The header metadata is returned once the
// file has been fully consumed.
func (e *Extractor) Extract(ctx context.Context, path string, fn func(Record) error) (Metadata, Stats, error) {
	total := 0
	if e.prescan {
		e.logger.Info("calculating VCF file size", zap.String("path", path))
		n, err := vcf.CountLines(path)
		if err != nil {
			return Metadata{}, Stats{}, fmt.Errorf("count lines: %w", err)
		}
		total = n
	}

	r, err := vcf.Open(path)
	if err != nil {
		return Metadata{}, Stats{}, err
	}
	defer r.Close()

	return e.extract(ctx, r, total, fn)
}

// ExtractReader is like Extract but reads an already-decompressed stream.
func (e *Extractor) ExtractReader(ctx context.Context, r io.Reader, fn func(Record) error) (Metadata, Stats, error) {
	return e.extract(ctx, vcf.NewLineReader(r), 0, fn)
}

// ExtractAll reads the whole file and returns every accepted record.
func (e *Extractor) ExtractAll(ctx context.Context, path string) (*Result, error) {
	res := &Result{}
	meta, stats, err := e.Extract(ctx, path, func(rec Record) error {
		res.Records = append(res.Records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	res.Metadata = meta
	res.Stats = stats
	return res, nil
}

func (e *Extractor) extract(ctx context.Context, r *vcf.LineReader, total int, fn func(Record) error) (Metadata, Stats, error) {
	var (
		meta      Metadata
		stats     Stats
		checkedFF bool
	)

	e.progress.Start(total)
	defer e.progress.Finish()

	for {
		if stats.Lines%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return meta, stats, err
			}
		}

		line, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return meta, stats, err
		}
		stats.Lines++

		if vcf.IsHeaderLine(line) {
			stats.Header++
			if !checkedFF {
				if !vcf.HasFileFormat(line) {
					return meta, stats, ErrInvalidFormat
				}
				checkedFF = true
				e.logger.Debug("VCF file is valid", zap.String("fileformat", line))
				continue
			}
			e.scanHeader(line, &meta)
			continue
		}

		if !checkedFF {
			return meta, stats, fmt.Errorf("%w: data line %d precedes the header", ErrInvalidFormat, r.LineNumber())
		}

		stats.Variants++
		rec, ok, err := parseRecord(line, r.LineNumber())
		if err != nil {
			return meta, stats, err
		}
		if !ok {
			stats.Skipped++
			e.logger.Debug("skipping non-primary chromosome",
				zap.Int("line", r.LineNumber()),
				zap.String("chrom", chromOf(line)))
		} else {
			if err := fn(rec); err != nil {
				return meta, stats, err
			}
			stats.Accepted++
		}
		e.progress.Update(stats.Variants)
	}

	if !checkedFF {
		return meta, stats, fmt.Errorf("%w: no header lines", ErrInvalidFormat)
	}

	return meta, stats, nil
}

// scanHeader updates meta from the fileDate and reference directives.
// Repeated directives overwrite earlier values.
func (e *Extractor) scanHeader(line string, meta *Metadata) {
	if v, ok := vcf.DirectiveValue(line, vcf.FileDateDirective); ok {
		meta.ReleaseDate = strings.ReplaceAll(v, "-", "")
		e.logger.Info("data release date found", zap.String("release_date", meta.ReleaseDate))
	}
	if v, ok := vcf.DirectiveValue(line, vcf.ReferenceDirective); ok {
		meta.GenomeReference = v
		e.logger.Info("reference genome assembly version", zap.String("reference", meta.GenomeReference))
	}
}

// parseRecord converts a data line into a Record. It returns ok=false for
// lines on chromosomes outside the primary set.
func parseRecord(line string, lineNumber int) (Record, bool, error) {
	fields := strings.Split(line, "\t")
	if !IsValidChrom(fields[0]) {
		return Record{}, false, nil
	}
	if len(fields) < minColumns {
		return Record{}, false, &vcf.ParseError{
			Line:    lineNumber,
			Message: fmt.Sprintf("expected at least %d columns, found %d", minColumns, len(fields)),
		}
	}

	rec := NewRecord(fields[0], fields[1], fields[2], fields[3], fields[4])
	if err := applyInfo(fields[7], &rec); err != nil {
		var rsErr *UnknownReviewStatusError
		if errors.As(err, &rsErr) {
			rsErr.Line = lineNumber
		}
		return Record{}, false, err
	}
	return rec, true, nil
}

func chromOf(line string) string {
	chrom, _, _ := strings.Cut(line, "\t")
	return chrom
}
