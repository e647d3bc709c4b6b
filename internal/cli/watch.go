// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/api2spec/apiref/internal/openapi"
	"github.com/api2spec/apiref/internal/scanner"
)

var (
	watchDebounce int
	watchOnChange string
)

var watchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Watch manifests and regenerate the index",
	Long: `Watch endpoint manifests and regenerate the index when they change.

The index is written once at startup and again after every burst of
changes. Directories are not watched recursively; the directories of the
manifests found at startup and the given paths are watched.

Example:
  apiref watch                            # Watch configured paths
  apiref watch ./api                      # Watch specific paths
  apiref watch --debounce 1000            # Wait 1s before regenerating
  apiref watch --on-change "make docs"    # Run command after regeneration`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().IntVar(&watchDebounce, "debounce", 0, "debounce duration in milliseconds (default: 500)")
	watchCmd.Flags().StringVar(&watchOnChange, "on-change", "", "command to run after regeneration")
}

func runWatch(cmd *cobra.Command, args []string) error {
	p, err := loadPipeline(args)
	if err != nil {
		return err
	}

	// Apply command-line overrides
	if watchDebounce > 0 {
		p.cfg.Watch.Debounce = watchDebounce
	}
	if watchOnChange != "" {
		p.cfg.Watch.OnChange = watchOnChange
	}

	printVerbose("Watch configuration:")
	printVerbose("  Debounce: %dms", p.cfg.Watch.Debounce)
	if p.cfg.Watch.OnChange != "" {
		printVerbose("  On change: %s", p.cfg.Watch.OnChange)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	regenerate := func() {
		if err := writeIndex(p); err != nil {
			printError("%v", err)
			return
		}
		if p.cfg.Watch.OnChange != "" {
			runHook(p.cfg.Watch.OnChange)
		}
	}
	regenerate()

	if err := startWatcher(ctx, p, regenerate); err != nil {
		return err
	}

	printInfo("Watching for changes in: %s", strings.Join(p.paths, ", "))
	printInfo("Press Ctrl+C to stop")

	<-ctx.Done()
	return nil
}

// writeIndex regenerates and writes the index file.
func writeIndex(p *pipeline) error {
	idx, err := p.buildIndex()
	if err != nil {
		return err
	}
	if err := openapi.NewWriter().WriteFile(idx, p.cfg.Output, outputFormat(p.cfg.Output, p.cfg.Format)); err != nil {
		return err
	}
	printInfo("Wrote %s (%d entries)", p.cfg.Output, idx.Len())
	return nil
}

// runHook runs the on-change command through the shell.
func runHook(command string) {
	c := exec.Command("sh", "-c", command)
	c.Stdout = stdout
	c.Stderr = stderr
	if err := c.Run(); err != nil {
		printError("on-change command failed: %v", err)
	}
}

// watchDirs returns the configured paths and the directories of the
// discovered manifests.
func watchDirs(p *pipeline, files []scanner.ManifestFile) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(dir string) {
		abs, err := filepath.Abs(dir)
		if err != nil || seen[abs] {
			return
		}
		if info, err := os.Stat(abs); err != nil || !info.IsDir() {
			return
		}
		seen[abs] = true
		dirs = append(dirs, abs)
	}
	for _, path := range p.paths {
		add(path)
	}
	for _, dir := range scanner.Dirs(files) {
		add(dir)
	}
	sort.Strings(dirs)
	return dirs
}
