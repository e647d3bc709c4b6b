// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/api2spec/apiref/internal/config"
	"github.com/api2spec/apiref/internal/manifest"
	"github.com/api2spec/apiref/internal/sections"
)

func TestDetectProjectInfo(t *testing.T) {
	tests := []struct {
		name         string
		goModContent string
		wantTitle    string
		wantModule   string
	}{
		{
			name: "simple module",
			goModContent: `module github.com/user/myapp

go 1.21
`,
			wantTitle:  "Myapp API",
			wantModule: "github.com/user/myapp",
		},
		{
			name: "module with hyphens",
			goModContent: `module github.com/user/my-awesome-api

go 1.21
`,
			wantTitle:  "My Awesome Api API",
			wantModule: "github.com/user/my-awesome-api",
		},
		{
			name: "module with underscores",
			goModContent: `module github.com/user/my_api_service

go 1.21
`,
			wantTitle:  "My Api Service API",
			wantModule: "github.com/user/my_api_service",
		},
		{
			name: "simple name",
			goModContent: `module api

go 1.21
`,
			wantTitle:  "Api API",
			wantModule: "api",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			goModPath := filepath.Join(tmpDir, "go.mod")
			err := os.WriteFile(goModPath, []byte(tt.goModContent), 0o644)
			require.NoError(t, err)

			info := detectProjectInfo(tmpDir)

			assert.Equal(t, tt.wantModule, info.Module)
			assert.Equal(t, tt.wantTitle, info.Title)
		})
	}
}

func TestDetectProjectInfo_NoGoMod(t *testing.T) {
	tmpDir := t.TempDir()

	info := detectProjectInfo(tmpDir)

	assert.Empty(t, info.Module)
	assert.Empty(t, info.Title)
}

func TestDefaultSectionConfig(t *testing.T) {
	cfg := defaultSectionConfig()

	reg, err := sections.FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, sections.Default().IDs(), reg.IDs())
}

func TestBuildConfigYAML(t *testing.T) {
	cfg := config.Default()
	cfg.Output = "docs/index.yaml"
	cfg.Sections = defaultSectionConfig()

	data, err := buildConfigYAML(cfg)
	require.NoError(t, err)

	out := string(data)
	assert.True(t, strings.HasPrefix(out, "# apiref configuration file"))
	assert.Contains(t, out, "output: docs/index.yaml")
	assert.Contains(t, out, "title: links & comments")

	var back config.Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg.Sections, back.Sections)
}

func TestInteractiveInit(t *testing.T) {
	cfg := config.Default()
	in := strings.NewReader("My API\n2.0.0\n\nhttps://example.com/{file}#L{line}\n\njson\n")
	var out bytes.Buffer

	cfg, err := interactiveInit(cfg, in, &out)
	require.NoError(t, err)

	assert.Equal(t, "My API", cfg.Render.Title)
	assert.Equal(t, "My API", cfg.OpenAPI.Info.Title)
	assert.Equal(t, "2.0.0", cfg.OpenAPI.Info.Version)
	assert.Empty(t, cfg.OpenAPI.Info.Description)
	assert.Equal(t, "https://example.com/{file}#L{line}", cfg.Render.SourceURL)
	assert.Equal(t, "api-index.yaml", cfg.Output)
	assert.Equal(t, "json", cfg.Format)
	assert.Contains(t, out.String(), "Title [API documentation]: ")
}

func TestInitCommand(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	chdirForTest(t, dir)
	require.NoError(t, os.WriteFile("go.mod", []byte("module github.com/acme/widget-service\n"), 0o644))

	out, err := executeCommand(rootCmd, "init", "--version", "3.1.0")
	require.NoError(t, err)
	assert.Contains(t, out, "Created apiref.yaml")
	assert.Contains(t, out, "Created api.endpoints.yaml")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "Widget Service API", cfg.Render.Title)
	assert.Equal(t, "Widget Service API", cfg.OpenAPI.Info.Title)
	assert.Equal(t, "3.1.0", cfg.OpenAPI.Info.Version)
	assert.Equal(t, ".", cfg.RootPath)
	assert.Len(t, cfg.Sections, sections.Default().Len())

	example, err := os.ReadFile("api.endpoints.yaml")
	require.NoError(t, err)
	assert.Equal(t, manifest.ExampleYAML, string(example))
}

func TestInitCommand_ExistingConfig(t *testing.T) {
	resetFlags(t)
	chdirForTest(t, t.TempDir())
	require.NoError(t, os.WriteFile("apiref.yaml", []byte("output: keep.yaml\n"), 0o644))

	_, err := executeCommand(rootCmd, "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCommand(rootCmd, "init", "--force", "--no-example")
	require.NoError(t, err)
	_, err = os.Stat("api.endpoints.yaml")
	assert.True(t, os.IsNotExist(err))
}
