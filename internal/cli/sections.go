// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/util"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the documentation sections",
	Long: `List the documentation sections in display order.

The catalog comes from the "sections" key of the config file, or the
built-in catalog when none is configured.`,
	Args: cobra.NoArgs,
	RunE: runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline(nil)
	if err != nil {
		return err
	}

	title := util.Identity
	if p.cfg.Render.TitleCase {
		title = util.TitleCaser(p.cfg.Render.Language)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE")
	for _, s := range p.registry.Sections() {
		fmt.Fprintf(tw, "%s\t%s\n", s.ID, title(s.Title))
	}
	return tw.Flush()
}
