// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/apiref/internal/config"
	"github.com/api2spec/apiref/internal/manifest"
	"github.com/api2spec/apiref/internal/sections"
	"github.com/api2spec/apiref/internal/util"
)

const (
	initConfigFile   = "apiref.yaml"
	initManifestFile = "api.endpoints.yaml"
)

var (
	initForce       bool
	initInteractive bool
	initNoExample   bool
	initTitle       string
	initVersion     string
	initDescription string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new apiref configuration file",
	Long: `Initialize a new apiref configuration file in the current directory.

This command creates an apiref.yaml file with sensible defaults and an
example endpoint manifest (api.endpoints.yaml) that you can customize.

Features:
  - Infers the reference title from the go.mod module name
  - Writes the built-in section catalog so it can be edited
  - Sets up appropriate exclude patterns

Example:
  apiref init                         # Create config and example manifest
  apiref init --force                 # Overwrite existing files
  apiref init --no-example            # Only write the config
  apiref init --interactive           # Interactive mode with prompts
  apiref init --title "My API"        # Set custom title`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing files")
	initCmd.Flags().BoolVarP(&initInteractive, "interactive", "i", false, "interactive mode with prompts")
	initCmd.Flags().BoolVar(&initNoExample, "no-example", false, "do not write the example manifest")
	initCmd.Flags().StringVar(&initTitle, "title", "", "reference title")
	initCmd.Flags().StringVar(&initVersion, "version", "", "API version for OpenAPI info")
	initCmd.Flags().StringVar(&initDescription, "description", "", "API description for OpenAPI info")
}

func runInit(cmd *cobra.Command, args []string) error {
	configFile := initConfigFile
	if cfgFile != "" {
		configFile = cfgFile
	}

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil && !initForce {
		return fmt.Errorf("config file %s already exists, use --force to overwrite", configFile)
	}

	// Determine project root
	projectRoot, err := filepath.Abs(".")
	if err != nil {
		return fmt.Errorf("failed to determine project root: %w", err)
	}

	// Create config with sensible defaults
	cfg := config.Default()
	cfg.RootPath = "."
	cfg.Sections = defaultSectionConfig()
	if output != "" {
		cfg.Output = output
	}
	if format != "" {
		cfg.Format = format
	}

	// Detect project info from go.mod
	info := detectProjectInfo(projectRoot)

	// Set titles from detection or flags
	if initTitle != "" {
		cfg.Render.Title = initTitle
	} else if info.Title != "" {
		cfg.Render.Title = info.Title
	}
	cfg.OpenAPI.Info.Title = cfg.Render.Title

	if initVersion != "" {
		cfg.OpenAPI.Info.Version = initVersion
	}

	if initDescription != "" {
		cfg.OpenAPI.Info.Description = initDescription
	} else if info.Description != "" {
		cfg.OpenAPI.Info.Description = info.Description
	}

	// Interactive mode
	if initInteractive && isTerminal() {
		cfg, err = interactiveInit(cfg, os.Stdin, stdout)
		if err != nil {
			return fmt.Errorf("interactive init failed: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Build YAML with comments
	data, err := buildConfigYAML(cfg)
	if err != nil {
		return err
	}

	// Write config file
	if err := os.WriteFile(configFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	printInfo("Created %s", configFile)

	if !initNoExample {
		if err := writeExampleManifest(initManifestFile); err != nil {
			return err
		}
	}

	printVerbose("Output: %s", cfg.Output)
	printVerbose("Paths: %s", strings.Join(cfg.Manifests.Paths, ", "))

	return nil
}

// writeExampleManifest writes the starter manifest unless a file is already
// there and --force is not set.
func writeExampleManifest(path string) error {
	if _, err := os.Stat(path); err == nil && !initForce {
		printInfo("Keeping existing %s", path)
		return nil
	}
	if err := os.WriteFile(path, []byte(manifest.ExampleYAML), 0o644); err != nil {
		return fmt.Errorf("failed to write example manifest: %w", err)
	}
	printInfo("Created %s", path)
	return nil
}

// defaultSectionConfig spells out the built-in catalog for editing.
func defaultSectionConfig() []config.SectionConfig {
	builtin := sections.Default().Sections()
	out := make([]config.SectionConfig, 0, len(builtin))
	for _, s := range builtin {
		out = append(out, config.SectionConfig{
			ID:          string(s.ID),
			Title:       s.Title,
			Description: s.Description,
		})
	}
	return out
}

// projectInfo holds information detected from the project.
type projectInfo struct {
	Title       string
	Module      string
	Description string
}

// detectProjectInfo detects project information from go.mod.
func detectProjectInfo(projectRoot string) projectInfo {
	info := projectInfo{}

	goModPath := filepath.Join(projectRoot, "go.mod")
	file, err := os.Open(goModPath)
	if err != nil {
		return info
	}
	defer file.Close()

	titleCase := util.TitleCaser("en")
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "module ") {
			info.Module = strings.TrimPrefix(line, "module ")
			info.Module = strings.TrimSpace(info.Module)

			// Extract a title from the module path
			// e.g., "github.com/user/my-api" -> "my-api"
			parts := strings.Split(info.Module, "/")
			if len(parts) > 0 {
				name := parts[len(parts)-1]
				// Convert kebab-case or snake_case to title case
				name = strings.ReplaceAll(name, "-", " ")
				name = strings.ReplaceAll(name, "_", " ")
				info.Title = titleCase(name) + " API"
			}
			break
		}
	}

	return info
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// interactiveInit prompts for configuration options on in, writing the
// prompts to out. An empty answer keeps the current value.
func interactiveInit(cfg *config.Config, in io.Reader, out io.Writer) (*config.Config, error) {
	reader := bufio.NewReader(in)

	prompt := func(label string, value *string) {
		fmt.Fprintf(out, "%s [%s]: ", label, *value)
		answer, _ := reader.ReadString('\n')
		if answer = strings.TrimSpace(answer); answer != "" {
			*value = answer
		}
	}

	prompt("Title", &cfg.Render.Title)
	cfg.OpenAPI.Info.Title = cfg.Render.Title
	prompt("API Version", &cfg.OpenAPI.Info.Version)
	prompt("API Description", &cfg.OpenAPI.Info.Description)
	prompt("Source URL template ({file}, {line})", &cfg.Render.SourceURL)
	prompt("Output file", &cfg.Output)
	prompt("Output format (yaml/json)", &cfg.Format)

	return cfg, nil
}

// buildConfigYAML builds a YAML config with a header comment.
func buildConfigYAML(cfg *config.Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	header := `# apiref configuration file
# Manifests matching manifests.include under manifests.paths are collected
# into the index written to "output".

`
	return append([]byte(header), data...), nil
}
