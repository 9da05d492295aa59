// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the metadata-extender CLI.
// It writes an XML metadata document beside every image of a directory,
// combining the camera tags embedded in the image with descriptive content
// kept in a template.
package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/metadata-extender/internal/batch"
	"github.com/pdiddy/metadata-extender/internal/document"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// configFileUsed is the config file initConfig read, logged once logging is
// set up.
var configFileUsed string

// rootCmd is the base command for the metadata-extender CLI.
var rootCmd = &cobra.Command{
	Use:   "metadata-extender",
	Short: "Write extended XML metadata documents for a folder of images",
	Long: `metadata-extender reads the camera tags embedded in each image of a
directory and writes an XML document beside it. The document combines the
tags with photographer, client, abstract and process descriptions kept in a
template file.

Use "template" to create and edit templates, "generate" to process a
directory, and "inspect" to see which tags an image carries.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine.
		_ = godotenv.Load()
		setupLogging(cmd)
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./metadata-extender.yaml or ~/.config/metadata-extender/metadata-extender.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("metadata-extender")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	home, err := os.UserHomeDir()
	if err == nil && cfgFile == "" {
		viper.AddConfigPath(filepath.Join(home, ".config", "metadata-extender"))
	}

	viper.SetDefault("generate.extensions", batch.DefaultExtensions)
	viper.SetDefault("generate.keep_going", false)
	viper.SetDefault("generate.indent", document.DefaultIndent)
	viper.SetDefault("generate.template", "")
	viper.SetDefault("ledger.enabled", false)
	viper.SetDefault("ledger.dir", defaultLedgerDir(home))
	viper.SetDefault("log_level", "warn")

	viper.SetEnvPrefix("METADATA_EXTENDER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	configFileUsed = ""
	if err := viper.ReadInConfig(); err == nil {
		configFileUsed = viper.ConfigFileUsed()
	}
}

func defaultLedgerDir(home string) string {
	if home == "" {
		return ".metadata-extender"
	}
	return filepath.Join(home, ".local", "share", "metadata-extender")
}

// setupLogging sends diagnostics to the command's stderr. --verbose wins
// over log_level.
func setupLogging(cmd *cobra.Command) {
	level := zerolog.WarnLevel
	if lvl, err := zerolog.ParseLevel(viper.GetString("log_level")); err == nil && lvl != zerolog.NoLevel {
		level = lvl
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen})

	if configFileUsed != "" {
		log.Debug().Str("file", configFileUsed).Msg("using config file")
	}
}

// appConfig reads the typed configuration from viper.
func appConfig() types.AppConfig {
	return types.AppConfig{
		Generate: types.GenerateConfig{
			Extensions: viper.GetStringSlice("generate.extensions"),
			Template:   viper.GetString("generate.template"),
			KeepGoing:  viper.GetBool("generate.keep_going"),
			Indent:     viper.GetInt("generate.indent"),
		},
		Ledger: types.LedgerConfig{
			Enabled: viper.GetBool("ledger.enabled"),
			Dir:     viper.GetString("ledger.dir"),
		},
		LogLevel: viper.GetString("log_level"),
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
