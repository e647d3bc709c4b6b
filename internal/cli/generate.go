// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/openapi"
)

// defaultOpenAPIOutput is used by --openapi when no output path is given.
const defaultOpenAPIOutput = "openapi.yaml"

var (
	generateOpenAPI bool
	generateMerge   bool
	generateDryRun  bool
	generateInclude []string
	generateExclude []string
)

var generateCmd = &cobra.Command{
	Use:   "generate [paths...]",
	Short: "Generate the documentation index from endpoint manifests",
	Long: `Generate the documentation index by collecting the endpoint manifests.

The generate command scans the given paths (or the configured manifest paths)
for endpoint manifests, collects every documented endpoint and writes the
aggregated index (section -> URI -> method) to the output file.

With --openapi the index is exported as an OpenAPI 3 document instead,
one operation per endpoint, tagged with its section.

Example:
  apiref generate                           # Generate from configured paths
  apiref generate ./api ./admin             # Generate from specific paths
  apiref generate --openapi -o openapi.json # Export an OpenAPI document
  apiref generate --openapi --merge         # Keep hand-edited info and summaries
  apiref generate --dry-run                 # Preview without writing`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateOpenAPI, "openapi", false, "export an OpenAPI document instead of the index")
	generateCmd.Flags().BoolVar(&generateMerge, "merge", false, "merge with the existing OpenAPI file")
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "preview output without writing to file")
	generateCmd.Flags().StringSliceVarP(&generateInclude, "include", "i", nil, "manifest glob patterns to include")
	generateCmd.Flags().StringSliceVarP(&generateExclude, "exclude", "e", nil, "manifest glob patterns to exclude")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline(args)
	if err != nil {
		return err
	}
	if len(generateInclude) > 0 {
		p.cfg.Manifests.Include = generateInclude
	}
	if len(generateExclude) > 0 {
		p.cfg.Manifests.Exclude = generateExclude
	}

	if generateDryRun {
		printVerbose("Dry run mode - no files will be written")
	}

	var (
		doc  any
		dest = p.cfg.Output
	)
	if generateOpenAPI {
		if output == "" {
			dest = defaultOpenAPIOutput
		}
		doc, err = buildOpenAPI(p, dest)
	} else {
		doc, err = p.buildIndex()
	}
	if err != nil {
		return err
	}

	writer := openapi.NewWriter()
	outFormat := outputFormat(dest, p.cfg.Format)

	if generateDryRun {
		return writer.Write(doc, cmd.OutOrStdout(), outFormat)
	}

	if err := writer.WriteFile(doc, dest, outFormat); err != nil {
		return err
	}
	printInfo("Wrote %s", dest)
	return nil
}

// buildOpenAPI exports the filtered index, merging with dest when --merge
// is set and the file exists.
func buildOpenAPI(p *pipeline, dest string) (any, error) {
	idx, err := p.renderIndex()
	if err != nil {
		return nil, err
	}

	doc, err := openapi.NewBuilder(p.cfg).Build(idx, p.registry)
	if err != nil {
		return nil, err
	}
	printVerbose("Built OpenAPI document with %d paths", len(doc.Paths))

	if !generateMerge {
		return doc, nil
	}
	if _, err := os.Stat(dest); os.IsNotExist(err) {
		printVerbose("No existing document at %s, nothing to merge", dest)
		return doc, nil
	}

	existing, err := openapi.ReadFile(dest)
	if err != nil {
		return nil, fmt.Errorf("failed to read existing document: %w", err)
	}
	return openapi.MergeDefault(existing, doc)
}

// outputFormat is the --format flag when given, else inferred from a .json,
// .yaml or .yml destination, else the configured format.
func outputFormat(dest, configured string) string {
	if format != "" {
		return format
	}
	switch strings.ToLower(filepath.Ext(dest)) {
	case ".json", ".yaml", ".yml":
		return openapi.FormatFromPath(dest)
	}
	return configured
}
