// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/openapi"
)

// Exit codes for check command
const (
	ExitCodeMatch      = 0 // Index file matches the manifests
	ExitCodeDifference = 1 // Index file differs from the manifests
	ExitCodeCheckError = 2 // Error during analysis
)

var (
	checkStrict bool
	checkIgnore []string
)

var checkCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Check if the index file matches the manifests",
	Long: `Check validates that the written index file matches the current manifests.

This command generates the index from the endpoint manifests and compares it
with the existing index file. It's useful for CI pipelines to ensure the
published reference is always in sync with the declarations.

Exit codes:
  0  Index matches the manifests
  1  Index differs from the manifests
  2  Error during analysis

Example:
  apiref check                          # Fail on any difference
  apiref check --strict=false           # Fail only on removed endpoints
  apiref check --ignore "/api/internal/**"   # Ignore some URIs`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", true, "fail on any difference, not only removals")
	checkCmd.Flags().StringSliceVar(&checkIgnore, "ignore", nil, "URI glob patterns to ignore in comparison")
}

func runCheck(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline(args)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	printVerbose("Check configuration:")
	printVerbose("  Strict mode: %t", checkStrict)
	if len(checkIgnore) > 0 {
		printVerbose("  Ignored patterns: %s", strings.Join(checkIgnore, ", "))
	}
	printVerbose("  Index file: %s", p.cfg.Output)

	// Check if index file exists
	if _, err := os.Stat(p.cfg.Output); os.IsNotExist(err) {
		printInfo("Run 'apiref generate' first to create the index file")
		return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("index file not found: %s", p.cfg.Output)}
	}

	existing, err := openapi.ReadIndex(p.cfg.Output)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: fmt.Errorf("failed to read existing index: %w", err)}
	}

	generated, err := p.buildIndex()
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: err}
	}

	result, err := openapi.NewDiffer(checkIgnore...).Diff(existing, generated)
	if err != nil {
		return &ExitError{Code: ExitCodeCheckError, Err: fmt.Errorf("failed to compare indexes: %w", err)}
	}

	if result.IsEmpty() {
		printInfo("Index is in sync with the manifests")
		return nil
	}

	printInfo("Index differs from the manifests:\n")
	printInfo("%s", openapi.FormatDiff(result))

	if result.HasBreakingChanges {
		printError("Breaking changes detected!")
	}

	printInfo("Run 'apiref generate' to update the index file")

	if checkStrict || result.HasBreakingChanges {
		return &ExitError{Code: ExitCodeDifference, Err: fmt.Errorf("index differs from manifests: %s", result.Summary)}
	}
	return nil
}
