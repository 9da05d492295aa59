// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-extender/internal/registry"
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List the tag identifiers the extractor knows by name",
	Long: `Tags lists the tag registry. Tags found in an image but missing from
this list are dropped from the exif section.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for _, e := range registry.Entries() {
			fmt.Fprintf(out, "0x%04x  %s\n", e.ID, e.Name)
		}
		fmt.Fprintf(out, "\n%d tags\n", registry.Len())
	},
}

func init() {
	rootCmd.AddCommand(tagsCmd)
}
