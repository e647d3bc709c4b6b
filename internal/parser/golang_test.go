// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerSource = `package api

// GetMe returns the identity of the current user.
//
// The response includes karma.
func GetMe() {}

func undocumented() {}

type Controller struct{}

// PostLogout ends the session.
func (c *Controller) PostLogout() {}

// List is generic.
func (c Box[T]) List() {}
`

func TestGoParser_ParseSource(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		wantErr bool
	}{
		{
			name: "valid Go source",
			source: `package main

func main() {}`,
			wantErr: false,
		},
		{
			name:    "invalid Go source",
			source:  `package main func`,
			wantErr: true,
		},
		{
			name: "empty package",
			source: `package empty
`,
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewGoParser()
			pf, err := p.ParseSource("test.go", tt.source)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, pf)
				assert.NotNil(t, pf.AST)
			}
		})
	}
}

func TestGoParser_ExtractFuncs(t *testing.T) {
	p := NewGoParser()
	pf, err := p.ParseSource("api.go", handlerSource)
	require.NoError(t, err)

	funcs := p.ExtractFuncs(pf)
	require.Len(t, funcs, 4)

	assert.Equal(t, "GetMe", funcs[0].Name)
	assert.Empty(t, funcs[0].Receiver)
	assert.Equal(t, "GetMe returns the identity of the current user.\n\nThe response includes karma.", funcs[0].Doc)
	assert.Equal(t, 6, funcs[0].Position.Line)
	assert.Equal(t, "api.go", funcs[0].Position.Filename)

	assert.Empty(t, funcs[1].Doc)

	assert.Equal(t, "Controller", funcs[2].Receiver)
	assert.Equal(t, "Controller.PostLogout", funcs[2].QualifiedName())
	assert.Equal(t, "PostLogout ends the session.", funcs[2].Doc)

	assert.Equal(t, "Box.List", funcs[3].QualifiedName())
}

func TestGoParser_FindFunc(t *testing.T) {
	p := NewGoParser()
	pf, err := p.ParseSource("api.go", handlerSource)
	require.NoError(t, err)

	fd, ok := p.FindFunc(pf, "Controller.PostLogout")
	require.True(t, ok)
	assert.Equal(t, 13, fd.Position.Line)

	_, ok = p.FindFunc(pf, "PostLogout")
	assert.False(t, ok, "methods need the receiver prefix")
}

func TestGoParser_LookupHandler(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.go")
	require.NoError(t, os.WriteFile(path, []byte(handlerSource), 0o644))

	p := NewGoParser()

	fd, err := p.LookupHandler(path + "#GetMe")
	require.NoError(t, err)
	assert.Equal(t, path, fd.Position.Filename)
	assert.Contains(t, fd.Doc, "identity")

	// second lookup uses the cached file
	require.NoError(t, os.Remove(path))
	_, err = p.LookupHandler(path + "#Controller.PostLogout")
	require.NoError(t, err)
}

func TestGoParser_LookupHandler_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.go")
	require.NoError(t, os.WriteFile(path, []byte(handlerSource), 0o644))

	p := NewGoParser()

	tests := []struct {
		name string
		ref  string
		msg  string
	}{
		{"missing separator", path, "invalid handler reference"},
		{"empty name", path + "#", "invalid handler reference"},
		{"unknown function", path + "#Nope", "not found"},
		{"missing file", filepath.Join(dir, "missing.go") + "#GetMe", "failed to parse Go file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.LookupHandler(tt.ref)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}
