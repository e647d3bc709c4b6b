// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package manifest reads endpoint manifests and builds endpoint sets from
// them.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// File is the decoded content of one manifest.
type File struct {
	// Path is where the manifest was read from
	Path string `json:"-" yaml:"-" toml:"-"`

	Sets []SetSpec `json:"sets" yaml:"sets" toml:"sets"`
}

// SetSpec declares one endpoint set.
type SetSpec struct {
	Name      string         `json:"name" yaml:"name" toml:"name"`
	Prefix    string         `json:"prefix" yaml:"prefix" toml:"prefix"`
	Endpoints []EndpointSpec `json:"endpoints" yaml:"endpoints" toml:"endpoints"`
}

// EndpointSpec declares one endpoint and its annotations.
type EndpointSpec struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	Doc  string `json:"doc,omitempty" yaml:"doc,omitempty" toml:"doc,omitempty"`

	// Handler is "path/to/file.go#Func", relative to the manifest
	Handler string `json:"handler,omitempty" yaml:"handler,omitempty" toml:"handler,omitempty"`

	Annotations []AnnotationSpec `json:"annotations,omitempty" yaml:"annotations,omitempty" toml:"annotations,omitempty"`

	// Line is the manifest line of the entry (YAML only)
	Line int `json:"-" yaml:"-" toml:"-"`
}

// AnnotationSpec is one attachment applied to an endpoint. Absent lists
// stay nil so that they do not override earlier annotations.
type AnnotationSpec struct {
	Section     string            `json:"section" yaml:"section" toml:"section"`
	Doc         *string           `json:"doc,omitempty" yaml:"doc,omitempty" toml:"doc,omitempty"`
	URI         *string           `json:"uri,omitempty" yaml:"uri,omitempty" toml:"uri,omitempty"`
	URIVariants []string          `json:"uri_variants,omitempty" yaml:"uri_variants,omitempty" toml:"uri_variants,omitempty"`
	Extensions  []string          `json:"extensions,omitempty" yaml:"extensions,omitempty" toml:"extensions,omitempty"`
	Parameters  map[string]string `json:"parameters,omitempty" yaml:"parameters,omitempty" toml:"parameters,omitempty"`
	Extends     string            `json:"extends,omitempty" yaml:"extends,omitempty" toml:"extends,omitempty"`

	// Line is the manifest line of the entry (YAML only)
	Line int `json:"-" yaml:"-" toml:"-"`
}

var (
	endpointKeys   = []string{"name", "doc", "handler", "annotations"}
	annotationKeys = []string{"section", "doc", "uri", "uri_variants", "extensions", "parameters", "extends"}
)

// checkKeys rejects mapping keys outside allowed. Node.Decode does not
// inherit the decoder's KnownFields setting, so entries with custom
// unmarshalers check their own keys.
func checkKeys(value *yaml.Node, allowed []string) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i]
		if !slices.Contains(allowed, key.Value) {
			return fmt.Errorf("line %d: unknown field %q", key.Line, key.Value)
		}
	}
	return nil
}

// UnmarshalYAML records the line of the endpoint entry.
func (e *EndpointSpec) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, endpointKeys); err != nil {
		return err
	}
	type plain EndpointSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*e = EndpointSpec(p)
	e.Line = value.Line
	return nil
}

// UnmarshalYAML records the line of the annotation entry.
func (a *AnnotationSpec) UnmarshalYAML(value *yaml.Node) error {
	if err := checkKeys(value, annotationKeys); err != nil {
		return err
	}
	type plain AnnotationSpec
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*a = AnnotationSpec(p)
	a.Line = value.Line
	return nil
}

// Parse decodes manifest content in the given format ("yaml", "json" or
// "toml"). Unknown fields are rejected in every format.
func Parse(path, format string, content []byte) (*File, error) {
	f := &File{Path: path}

	var err error
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(content))
		dec.KnownFields(true)
		if err = dec.Decode(f); errors.Is(err, io.EOF) {
			err = nil
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(content))
		dec.DisallowUnknownFields()
		err = dec.Decode(f)
	case "toml":
		err = toml.NewDecoder(bytes.NewReader(content)).DisallowUnknownFields().Decode(f)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q for %s", format, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %s: %w", path, err)
	}

	f.Path = path
	return f, nil
}

// Marshal encodes a manifest in the given format.
func Marshal(f *File, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(f)
	case "json":
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "toml":
		return toml.Marshal(f)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}
}
