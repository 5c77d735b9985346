// Package main generates CLI reference documentation from the awb-tracker
// command tree, as markdown or man pages.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/donaldgifford/awb-tracker/cmd/awb-tracker/cmd"
)

func main() {
	output := flag.String("output", "docs/cli", "output directory")
	format := flag.String("format", "markdown", "output format: markdown or man")
	flag.Parse()

	if err := generate(*output, *format); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("CLI docs (%s) generated in %s/\n", *format, *output)
}

func generate(output, format string) error {
	if err := os.MkdirAll(output, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	root := cmd.Root()
	root.DisableAutoGenTag = true

	var err error
	switch format {
	case "markdown":
		err = doc.GenMarkdownTree(root, output)
	case "man":
		err = doc.GenManTree(root, &doc.GenManHeader{
			Title:   "AWB-TRACKER",
			Section: "1",
			Source:  "awb-tracker " + cmd.Version,
		}, output)
	default:
		return fmt.Errorf("unknown format %q (want markdown or man)", format)
	}
	if err != nil {
		return fmt.Errorf("generating docs: %w", err)
	}
	return nil
}
