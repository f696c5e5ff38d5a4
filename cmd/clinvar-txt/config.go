package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage clinvar-txt configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.clinvar-txt.yaml.\nKnown keys: batch-size, duckdb, output-dir, prescan, verbose.",
		Example: `  clinvar-txt config                        # show all config
  clinvar-txt config set output-dir /data/out  # default output directory
  clinvar-txt config get prescan               # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd.OutOrStdout(), args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd.OutOrStdout(), args[0])
		},
	}
}

// configKeys lists the settings read by the convert command, with the kind of
// value each one holds.
var configKeys = map[string]string{
	"output-dir": "path",
	"duckdb":     "path",
	"prescan":    "bool",
	"verbose":    "bool",
	"batch-size": "int",
}

// parseConfigValue checks key against configKeys and converts value to the
// key's type.
func parseConfigValue(key, value string) (any, error) {
	kind, ok := configKeys[key]
	if !ok {
		return nil, fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(knownConfigKeys(), ", "))
	}

	switch kind {
	case "bool":
		switch strings.ToLower(value) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
		return nil, fmt.Errorf("%s: expected true or false, got %q", key, value)
	case "int":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: expected a non-negative integer, got %q", key, value)
		}
		return n, nil
	}
	return value, nil
}

func knownConfigKeys() []string {
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// runConfigShow prints the effective value of every known key, whether it
// comes from the config file, the environment or a flag default.
func runConfigShow(w io.Writer) error {
	settings := make(map[string]any, len(configKeys))
	for _, k := range knownConfigKeys() {
		if v := viper.Get(k); v != nil {
			settings[k] = v
		}
	}

	if cfg := viper.ConfigFileUsed(); cfg != "" {
		if _, err := os.Stat(cfg); err == nil {
			fmt.Fprintf(w, "# Config file: %s\n", cfg)
		} else {
			fmt.Fprintf(w, "# Config file: %s (not created yet)\n", cfg)
		}
	}
	if len(settings) == 0 {
		return nil
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	fmt.Fprint(w, string(out))
	return nil
}

func runConfigSet(w io.Writer, key, value string) error {
	v, err := parseConfigValue(key, value)
	if err != nil {
		return err
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".clinvar-txt.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(w, "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}

func runConfigGet(w io.Writer, key string) error {
	if _, ok := configKeys[key]; !ok {
		return fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(knownConfigKeys(), ", "))
	}
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(w, val)
	return nil
}
