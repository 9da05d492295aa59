// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-extender/internal/templates"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Create and edit template files (new, show, set, toggle)",
	Long: `A template holds the descriptive content written into every document:
the photographer and client contact fields, the abstract, the process
description, and a switch for each of those four sections.

Templates ending in .toml are written as TOML; anything else is YAML.`,
}

// --- new subcommand ---

var templateNewCmd = &cobra.Command{
	Use:   "new <file>",
	Short: "Write a template with every field empty and every section enabled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to replace it)", path)
		}
		if err := templates.Save(path, types.NewConfigurationRecord()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created: %s\n", path)
		return nil
	},
}

// --- show subcommand ---

var templateShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the sections and fields of a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec, err := templates.Load(args[0])
		if err != nil {
			return err
		}
		printRecord(cmd, rec)
		return nil
	},
}

func printRecord(cmd *cobra.Command, rec types.ConfigurationRecord) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Sections:")
	for _, s := range types.SectionNames {
		state := "off"
		if rec.Toggle(s) {
			state = "on"
		}
		fmt.Fprintf(out, "  %-14s %s\n", s, state)
	}
	fmt.Fprintln(out, "\nFields:")
	for _, f := range rec.Fields {
		value := truncate(strings.ReplaceAll(f.Value, "\n", `\n`), 60)
		fmt.Fprintf(out, "  %-16s %s\n", f.Key, value)
	}
}

// truncate shortens s to at most limit characters, ending in "..." when cut.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// --- set subcommand ---

var templateSetCmd = &cobra.Command{
	Use:   "set <file> KEY=VALUE...",
	Short: "Set one or more fields of a template",
	Long: `Set assigns field values in an existing template. Keys are the fixed field
names (p_Name, c_Email, Abstract, ...). A value of the form @path is read
from that file, which suits the multi-line Abstract and Process fields.`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		rec, err := templates.Load(path)
		if err != nil {
			return err
		}
		for _, assignment := range args[1:] {
			key, value, ok := strings.Cut(assignment, "=")
			if !ok {
				return fmt.Errorf("invalid assignment %q (want KEY=VALUE)", assignment)
			}
			if strings.HasPrefix(value, "@") {
				data, err := os.ReadFile(value[1:])
				if err != nil {
					return fmt.Errorf("reading value for %s: %w", key, err)
				}
				value = strings.TrimRight(string(data), "\n")
			}
			if err := rec.Set(key, value); err != nil {
				return err
			}
		}
		if err := templates.Save(path, rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "updated: %s\n", path)
		return nil
	},
}

// --- toggle subcommand ---

var templateToggleCmd = &cobra.Command{
	Use:   "toggle <file> <section> on|off",
	Short: "Enable or disable a section (photographer, client, abstract, process)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		section, ok := types.ParseSectionName(args[1])
		if !ok {
			return fmt.Errorf("unknown section %q", args[1])
		}
		var on bool
		switch strings.ToLower(args[2]) {
		case "on", "true", "yes":
			on = true
		case "off", "false", "no":
		default:
			return fmt.Errorf("invalid state %q (want on or off)", args[2])
		}

		rec, err := templates.Load(path)
		if err != nil {
			return err
		}
		if err := rec.SetToggle(section, on); err != nil {
			return err
		}
		if err := templates.Save(path, rec); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s\n", path, section, args[2])
		return nil
	},
}

func init() {
	templateNewCmd.Flags().Bool("force", false, "replace an existing file")

	templateCmd.AddCommand(templateNewCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateSetCmd)
	templateCmd.AddCommand(templateToggleCmd)

	rootCmd.AddCommand(templateCmd)
}
