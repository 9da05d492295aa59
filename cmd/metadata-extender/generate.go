// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/metadata-extender/internal/batch"
	"github.com/pdiddy/metadata-extender/internal/ledger"
	"github.com/pdiddy/metadata-extender/internal/templates"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <image-dir>",
	Short: "Write an XML metadata document beside every image in a directory",
	Long: `Generate scans image-dir for images (by default .jpg and .jpeg), reads the
camera tags embedded in each one and writes <name>.xml beside it. The
descriptive sections come from the template given with --template; without
one every section is written with empty fields.

Existing documents are overwritten. By default the first image that cannot
be read or written stops the run; --keep-going reports it and moves on.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	cfg := appConfig()
	dir := args[0]

	rec := types.NewConfigurationRecord()
	if cfg.Generate.Template != "" {
		loaded, err := templates.Load(cfg.Generate.Template)
		if err != nil {
			return err
		}
		rec = loaded
	}

	names, err := batch.ListImages(dir, cfg.Generate.Extensions)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "found %d image(s) in %s\n", len(names), dir)

	opts := batch.Options{
		KeepGoing: cfg.Generate.KeepGoing,
		Progress:  out,
		Indent:    cfg.Generate.Indent,
	}

	var run *ledger.Run
	if cfg.Ledger.Enabled && len(names) > 0 {
		store, err := ledger.NewStore(cfg.Ledger)
		if err != nil {
			return err
		}
		defer store.Close()

		run, err = store.StartRun(ctx, dir, len(names), cfg.Generate.KeepGoing)
		if err != nil {
			return err
		}
		opts.Recorder = run
	}

	result, runErr := batch.Run(ctx, dir, names, rec, opts)

	if run != nil {
		status := runErr
		if status == nil {
			status = result.Err()
		}
		if err := run.Finish(ctx, status); err != nil {
			log.Warn().Err(err).Str("run", run.ID).Msg("closing ledger run")
		}
		fmt.Fprintf(out, "ledger run: %s\n", run.ID)
	}

	if runErr != nil {
		return runErr
	}
	if result.HasFailures() {
		return fmt.Errorf("%d image(s) failed", len(result.Failed))
	}
	return nil
}

func init() {
	generateCmd.Flags().StringP("template", "t", "", "template file with the descriptive fields (.yaml or .toml)")
	generateCmd.Flags().Bool("keep-going", false, "continue past images that fail and report them at the end")
	generateCmd.Flags().Int("indent", 2, "spaces per nesting level in written documents (negative for one line)")
	generateCmd.Flags().StringSlice("ext", nil, "image extensions to process (default .jpg,.jpeg)")
	generateCmd.Flags().Bool("ledger", false, "record the run in the ledger")

	_ = viper.BindPFlag("generate.template", generateCmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("generate.keep_going", generateCmd.Flags().Lookup("keep-going"))
	_ = viper.BindPFlag("generate.indent", generateCmd.Flags().Lookup("indent"))
	_ = viper.BindPFlag("generate.extensions", generateCmd.Flags().Lookup("ext"))
	_ = viper.BindPFlag("ledger.enabled", generateCmd.Flags().Lookup("ledger"))

	rootCmd.AddCommand(generateCmd)
}
