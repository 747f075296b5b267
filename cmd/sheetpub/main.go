// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the sheetpub CLI: convert a
// spreadsheet to data.csv, derive ProcessedValue into result.json, and
// publish the result for a static site.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/sheetpub/internal/logging"
	"github.com/pdiddy/sheetpub/internal/secrets"
	"github.com/pdiddy/sheetpub/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns fallback when set, otherwise the secret value for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// logger carries --verbose diagnostics; replaced in PersistentPreRunE.
var logger = zap.NewNop().Sugar()

// rootCmd is the base command for the sheetpub CLI.
var rootCmd = &cobra.Command{
	Use:   "sheetpub",
	Short: "Publish a spreadsheet as JSON with a derived ProcessedValue column",
	Long: `sheetpub turns a spreadsheet into a JSON artifact for static publication.

Each stage is a subcommand: convert exports the workbook to data.csv, run
reads data.csv, adds the ProcessedValue column, and writes result.json, and
publish copies result.json (plus optional YAML and SQLite renditions) into
the site directory or uploads it. CI invokes the stages in that order on
every push.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger = logging.New(cmd.ErrOrStderr(), verbose)
		if f := viper.ConfigFileUsed(); f != "" {
			logger.Debugf("using config file %s", f)
		}

		s, err := secrets.Load(afero.NewOsFs(), ".secrets", cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			logger.Debugf("loaded secrets: %v", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./sheetpub.yaml or ~/.config/sheetpub/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log diagnostic detail to stderr")
}

func initConfig() {
	setDefaults(types.DefaultPipelineConfig())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("sheetpub")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "sheetpub"))
		}
	}

	viper.SetEnvPrefix("SHEETPUB")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "warning: could not read config file %s: %v\n", cfgFile, err)
	}
}

// setDefaults registers every configuration key so environment variables
// resolve even when no config file mentions the key.
func setDefaults(d types.PipelineConfig) {
	viper.SetDefault("run.input", d.Run.Input)
	viper.SetDefault("run.output", d.Run.Output)
	viper.SetDefault("run.indent", d.Run.Indent)
	viper.SetDefault("run.require_version", d.Run.RequireVersion)

	viper.SetDefault("conversion.backend", string(d.Conversion.Backend))
	viper.SetDefault("conversion.workbook", d.Conversion.Workbook)
	viper.SetDefault("conversion.sheet", d.Conversion.Sheet)
	viper.SetDefault("conversion.image", d.Conversion.Image)
	viper.SetDefault("conversion.output", d.Conversion.Output)

	formats := make([]string, len(d.Publish.Formats))
	for i, f := range d.Publish.Formats {
		formats[i] = string(f)
	}
	viper.SetDefault("publish.site_dir", d.Publish.SiteDir)
	viper.SetDefault("publish.formats", formats)
	viper.SetDefault("publish.upload_url", d.Publish.UploadURL)
	viper.SetDefault("publish.upload_token", d.Publish.UploadToken)
	viper.SetDefault("publish.timeout", d.Publish.Timeout)
	viper.SetDefault("publish.max_retries", d.Publish.MaxRetries)
}

// loadConfig decodes the merged flag, environment, file, and default
// settings.
func loadConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding configuration: %w", err)
	}
	return cfg, nil
}

// bindFlag ties a command flag to a configuration key.
func bindFlag(cmd *cobra.Command, flag, key string) {
	if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("binding --%s to %s: %v", flag, key, err))
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
