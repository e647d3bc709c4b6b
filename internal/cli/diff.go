// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/openapi"
)

var (
	diffIgnore   []string
	diffExitCode bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-index> <new-index>",
	Short: "Compare two documentation indexes",
	Long: `Compare two documentation indexes and show the differences.

Entries are compared per section, URI and method. Removed entries are
reported as breaking changes.

Example:
  apiref diff old.yaml new.yaml                 # Compare two index files
  apiref diff --ignore "/api/v1/**" a.json b.json
  apiref diff --exit-code old.yaml new.yaml     # Exit 1 when they differ`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	diffCmd.Flags().StringSliceVar(&diffIgnore, "ignore", nil, "URI glob patterns to ignore in comparison")
	diffCmd.Flags().BoolVar(&diffExitCode, "exit-code", false, "exit with 1 when the indexes differ")
}

func runDiff(cmd *cobra.Command, args []string) error {
	printVerbose("Comparing %s against %s...", args[0], args[1])

	a, err := openapi.ReadIndex(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	b, err := openapi.ReadIndex(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	result, err := openapi.NewDiffer(diffIgnore...).Diff(a, b)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(openapi.FormatDiff(result), "\n"))

	if diffExitCode && !result.IsEmpty() {
		return &ExitError{Code: 1}
	}
	return nil
}
