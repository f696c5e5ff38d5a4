package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/clinvar-txt/internal/clinvar"
	"github.com/inodb/clinvar-txt/internal/duckdb"
	"github.com/inodb/clinvar-txt/internal/output"
)

type convertOptions struct {
	OutputDir  string
	Prescan    bool
	DuckDBPath string
	BatchSize  int
}

func convertOptionsFromConfig() convertOptions {
	opts := convertOptions{
		OutputDir:  viper.GetString("output-dir"),
		Prescan:    viper.GetBool("prescan"),
		DuckDBPath: viper.GetString("duckdb"),
		BatchSize:  viper.GetInt("batch-size"),
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	return opts
}

// runConvert extracts inputPath and writes the processed file. Nothing is left
// under the output name unless the whole input was read successfully.
func runConvert(ctx context.Context, inputPath string, opts convertOptions, logger *zap.Logger) (string, error) {
	ext := clinvar.NewExtractor()
	ext.SetLogger(logger)
	ext.SetProgress(clinvar.NewLogObserver(logger))
	ext.SetPrescan(opts.Prescan)

	fw, err := output.NewFileWriter(opts.OutputDir)
	if err != nil {
		return "", err
	}
	defer fw.Abort()

	var (
		store   *duckdb.Store
		batcher *duckdb.Batcher
		ok      bool
	)
	if opts.DuckDBPath != "" {
		// The export always starts from an empty database.
		if _, err := os.Stat(opts.DuckDBPath); err == nil {
			if err := os.Remove(opts.DuckDBPath); err != nil {
				return "", fmt.Errorf("remove existing database: %w", err)
			}
		}
		store, err = duckdb.Open(opts.DuckDBPath)
		if err != nil {
			return "", err
		}
		defer func() {
			store.Close()
			if !ok {
				os.Remove(opts.DuckDBPath)
				os.Remove(opts.DuckDBPath + ".wal")
			}
		}()
		batcher = store.NewBatcher(opts.BatchSize)
	}

	logger.Info("reading ClinVar VCF file", zap.String("input", inputPath))
	meta, stats, err := ext.Extract(ctx, inputPath, func(rec clinvar.Record) error {
		if err := fw.Write(rec); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if batcher != nil {
			return batcher.Add(rec)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if batcher != nil {
		if err := batcher.Flush(); err != nil {
			return "", err
		}
		src, err := duckdb.StatFile(inputPath)
		if err != nil {
			return "", fmt.Errorf("stat input: %w", err)
		}
		if err := store.WriteRelease(meta, src); err != nil {
			return "", err
		}
		logger.Info("DuckDB export written",
			zap.String("path", opts.DuckDBPath),
			zap.Int("records", batcher.Written()))
	}

	path, err := fw.Commit(meta)
	if err != nil {
		return "", err
	}
	ok = true

	logger.Info("output file written",
		zap.String("path", path),
		zap.String("reference", meta.GenomeReference),
		zap.String("release_date", meta.ReleaseDate),
		zap.Int("variants", stats.Variants),
		zap.Int("accepted", stats.Accepted),
		zap.Int("skipped", stats.Skipped))

	return path, nil
}
