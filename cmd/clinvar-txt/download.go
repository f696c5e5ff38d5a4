package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ClinVar FTP base URL
const clinvarBaseURL = "https://ftp.ncbi.nlm.nih.gov/pub/clinvar"

// clinvarVCFURL returns the URL of the latest ClinVar VCF for the given assembly.
func clinvarVCFURL(assembly string) (string, error) {
	switch strings.ToUpper(assembly) {
	case "GRCH37":
		return clinvarBaseURL + "/vcf_GRCh37/clinvar.vcf.gz", nil
	case "GRCH38":
		return clinvarBaseURL + "/vcf_GRCh38/clinvar.vcf.gz", nil
	default:
		return "", fmt.Errorf("unsupported assembly %q (use GRCh37 or GRCh38)", assembly)
	}
}

func newDownloadCmd() *cobra.Command {
	var (
		assembly  string
		outputDir string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the latest ClinVar VCF release",
		Long:  "Download the latest clinvar.vcf.gz for an assembly from the NCBI FTP site.",
		Example: `  clinvar-txt download
  clinvar-txt download --assembly GRCh37 --output /data/clinvar`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := clinvarVCFURL(assembly)
			if err != nil {
				return err
			}

			destDir := filepath.Join(outputDir, strings.ToLower(assembly))
			if err := os.MkdirAll(destDir, 0755); err != nil {
				return fmt.Errorf("cannot create directory %s: %w", destDir, err)
			}

			dest := filepath.Join(destDir, filepath.Base(url))
			if force {
				os.Remove(dest)
			}

			logger.Info("downloading ClinVar VCF",
				zap.String("assembly", assembly),
				zap.String("url", url),
				zap.String("destination", dest))
			if err := downloadFile(url, dest); err != nil {
				return fmt.Errorf("downloading ClinVar VCF: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "To convert the release, run:\n  clinvar-txt %s\n", dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&assembly, "assembly", "GRCh38", "Genome assembly: GRCh37 or GRCh38")
	cmd.Flags().StringVar(&outputDir, "output", ".", "Output directory")
	cmd.Flags().BoolVar(&force, "force", false, "Download again even if the file exists")

	return cmd
}

// downloadFile downloads a file from URL to the destination path with progress.
func downloadFile(url, destPath string) error {
	// Check if file already exists
	if info, err := os.Stat(destPath); err == nil {
		logger.Info("file already exists, skipping",
			zap.String("file", filepath.Base(destPath)),
			zap.String("size", formatSize(info.Size())))
		return nil
	}

	client := &http.Client{
		Timeout: 30 * time.Minute,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP error: %s", resp.Status)
	}

	tmpPath := destPath + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	var downloaded int64
	pw := &progressWriter{
		total:      resp.ContentLength,
		downloaded: &downloaded,
		lastPrint:  time.Now(),
	}

	_, err = io.Copy(f, io.TeeReader(resp.Body, pw))
	f.Close()

	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("download failed: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename file: %w", err)
	}

	fmt.Fprintln(os.Stderr)
	logger.Info("download complete", zap.String("size", formatSize(downloaded)))
	return nil
}

// progressWriter tracks download progress.
type progressWriter struct {
	total      int64
	downloaded *int64
	lastPrint  time.Time
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	*pw.downloaded += int64(n)

	// Print progress every second
	if time.Since(pw.lastPrint) > time.Second {
		if pw.total > 0 {
			pct := float64(*pw.downloaded) / float64(pw.total) * 100
			fmt.Fprintf(os.Stderr, "\r    Progress: %s / %s (%.1f%%)  ",
				formatSize(*pw.downloaded), formatSize(pw.total), pct)
		} else {
			fmt.Fprintf(os.Stderr, "\r    Progress: %s  ", formatSize(*pw.downloaded))
		}
		pw.lastPrint = time.Now()
	}

	return n, nil
}

// formatSize formats bytes as human-readable size.
func formatSize(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
