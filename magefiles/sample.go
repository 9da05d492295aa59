//go:build mage

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const sampleDir = "sample"

// Sample writes sample/studio.yaml, a template with every section enabled
// and placeholder photographer details, using the freshly built binary.
func Sample() error {
	mg.Deps(Build)
	if err := os.MkdirAll(sampleDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", sampleDir, err)
	}

	bin := binDir + "/" + binName
	tpl := sampleDir + "/studio.yaml"
	steps := [][]string{
		{"template", "new", "--force", tpl},
		{"template", "set", tpl,
			"p_Organization=Example Studio",
			"p_Name=Jane Photographer",
			"p_Email=jane@example.com",
			"Abstract=Sample abstract.",
		},
		{"template", "show", tpl},
	}
	for _, args := range steps {
		if err := sh.RunV(bin, args...); err != nil {
			return err
		}
	}
	return nil
}

// Generate runs the built binary over dir with the sample template.
func Generate(dir string) error {
	mg.Deps(Sample)
	return sh.RunV(binDir+"/"+binName, "generate", dir, "--template", sampleDir+"/studio.yaml", "--keep-going")
}
