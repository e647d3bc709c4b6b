// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/openapi"
	"github.com/api2spec/apiref/internal/present"
	"github.com/api2spec/apiref/pkg/types"
)

var (
	printRaw   bool
	printIndex bool
	printHTML  bool
	printStyle string
	printWidth int
)

var printCmd = &cobra.Command{
	Use:   "print [index-file]",
	Short: "Print the API reference to stdout",
	Long: `Print the API reference to standard output.

If an index file is provided it is rendered; otherwise the index is
generated from the endpoint manifests. By default the reference is rendered
as styled terminal output. Use --raw for plain markdown, --html for a
standalone HTML page, or --index to print the index itself.

Example:
  apiref print                        # Generate and render
  apiref print api-index.yaml         # Render an existing index
  apiref print --raw > API.md         # Write markdown
  apiref print --index -f json        # Print the index as JSON`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPrint,
}

func init() {
	printCmd.Flags().BoolVar(&printRaw, "raw", false, "print plain markdown")
	printCmd.Flags().BoolVar(&printHTML, "html", false, "print a standalone HTML page")
	printCmd.Flags().BoolVar(&printIndex, "index", false, "print the index instead of the rendered reference")
	printCmd.Flags().StringVar(&printStyle, "style", "", "terminal style: dark, light, notty, ... (default: auto)")
	printCmd.Flags().IntVar(&printWidth, "width", 0, "word wrap width for terminal output")
}

func runPrint(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline(nil)
	if err != nil {
		return err
	}

	var idx types.Index
	if len(args) > 0 {
		printVerbose("Reading index from %s", args[0])
		idx, err = openapi.ReadIndex(args[0])
		if err == nil {
			idx, err = p.filter(idx)
		}
	} else {
		idx, err = p.renderIndex()
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if printIndex {
		outFormat := p.cfg.Format
		if format != "" {
			outFormat = format
		}
		return openapi.NewWriter().Write(idx, out, outFormat)
	}

	page, err := present.Build(idx, p.registry)
	if err != nil {
		return err
	}

	opts := p.renderOptions()
	opts.Style = printStyle
	if printWidth > 0 {
		opts.Width = printWidth
	}

	switch {
	case printRaw:
		return present.Markdown(out, page, opts)
	case printHTML:
		return present.HTML(out, page, opts)
	}

	rendered, err := present.Terminal(page, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(out, rendered)
	return err
}
