// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/metadata-extender/internal/document"
	"github.com/pdiddy/metadata-extender/internal/exif"
	"github.com/pdiddy/metadata-extender/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image>",
	Short: "Print the embedded tags of an image",
	Long: `Inspect prints the tags that generate would write into the exif section
of the image's document. --all also lists the nested and binary tags that
are left out. With --document the argument is a written .xml document and
its contents are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	path := args[0]

	if asDoc, _ := cmd.Flags().GetBool("document"); asDoc {
		doc, err := document.Read(path)
		if err != nil {
			return err
		}
		printDocument(out, doc)
		return nil
	}

	all, _ := cmd.Flags().GetBool("all")
	var tags *types.TagMap
	if all {
		f, err := os.Open(path)
		if err != nil {
			return &types.ExtractionError{Path: path, Err: err}
		}
		defer f.Close()
		if tags, err = exif.ReadTags(f, path); err != nil {
			return err
		}
	} else {
		var err error
		if tags, err = exif.Extract(path); err != nil {
			return err
		}
	}

	if tags.Len() == 0 {
		fmt.Fprintln(out, "No tags found.")
		return nil
	}
	for _, name := range tags.Names() {
		v, _ := tags.Get(name)
		if all {
			fmt.Fprintf(out, "%-28s %-9s %s\n", name, v.Kind, v.String())
			continue
		}
		fmt.Fprintf(out, "%-28s %s\n", name, v.String())
	}
	fmt.Fprintf(out, "\n%d tags\n", tags.Len())
	return nil
}

func printDocument(out io.Writer, doc *document.Document) {
	fmt.Fprintf(out, "image-name: %s\n", doc.ImageName())
	fmt.Fprintf(out, "pubdate:    %s\n", doc.PubDate())
	fmt.Fprintf(out, "\nexif (%d):\n", len(doc.Exif()))
	for _, f := range doc.Exif() {
		fmt.Fprintf(out, "  %-28s %s\n", f.Key, f.Value)
	}
	for _, s := range types.SectionNames {
		fields, ok := doc.Section(s)
		if !ok {
			continue
		}
		fmt.Fprintf(out, "\n%s:\n", s.Element())
		for _, f := range fields {
			fmt.Fprintf(out, "  %-16s %s\n", f.Key, f.Value)
		}
	}
}

func init() {
	inspectCmd.Flags().Bool("all", false, "include nested and binary tags")
	inspectCmd.Flags().Bool("document", false, "treat the argument as a written XML document")

	rootCmd.AddCommand(inspectCmd)
}
