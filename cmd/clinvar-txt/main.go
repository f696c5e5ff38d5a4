// Package main provides the clinvar-txt command-line tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile string
	logger  = zap.NewNop()
)

// errUsage is returned when the input file argument is missing.
var errUsage = errors.New("input file argument required")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr)
			root.Usage()
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clinvar-txt [flags] <clinvar.vcf.gz>",
		Short: "Convert a ClinVar VCF release into a simplified tab-delimited file",
		Long: `Convert a gzip-compressed ClinVar VCF release into a gzip-compressed,
tab-delimited file with one row per variant on a primary chromosome:

  chr pos ref alt clinvar_id clin_sig review_status stars disease allele_id dbsnp_id

The output is named clinvar_{reference}_{fileDate}_processed.txt.gz after the
##reference and ##fileDate header lines of the input.`,
		Example: `  clinvar-txt clinvar_20210115.vcf.gz
  clinvar-txt -o out/ --prescan clinvar.vcf.gz
  clinvar-txt --duckdb clinvar.duckdb clinvar.vcf.gz`,
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errUsage
			}
			if len(args) > 1 {
				return fmt.Errorf("expected one input file, got %d", len(args))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(); err != nil {
				return err
			}
			l, err := newLogger(viper.GetBool("verbose"))
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			logger = l
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := runConvert(cmd.Context(), args[0], convertOptionsFromConfig(), logger)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.clinvar-txt.yaml)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose (debug) logging")

	cmd.Flags().StringP("output-dir", "o", ".", "Directory for the processed output file")
	cmd.Flags().Bool("prescan", false, "Count input lines first so progress can show a percentage")
	cmd.Flags().String("duckdb", "", "Also export the records to this DuckDB database (replaced if it exists)")
	cmd.Flags().Int("batch-size", 0, "Records per DuckDB append batch (default 50000)")

	for _, name := range []string{"output-dir", "prescan", "duckdb", "batch-size"} {
		_ = viper.BindPFlag(name, cmd.Flags().Lookup(name))
	}
	_ = viper.BindPFlag("verbose", cmd.PersistentFlags().Lookup("verbose"))

	cmd.AddCommand(newDownloadCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads ~/.clinvar-txt.yaml (or --config) and CLINVAR_TXT_* env vars.
func initConfig() error {
	viper.SetEnvPrefix("CLINVAR_TXT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	viper.SetConfigFile(filepath.Join(home, ".clinvar-txt.yaml"))
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// newLogger builds the console logger used by all commands. Logs go to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.DisableStacktrace = true
	cfg.Sampling = nil
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
