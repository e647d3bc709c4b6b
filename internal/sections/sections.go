// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

// Package sections provides the ordered catalog of documentation sections.
package sections

import (
	"errors"
	"fmt"

	"github.com/api2spec/apiref/internal/config"
	"github.com/api2spec/apiref/pkg/types"
)

// Built-in section identifiers.
const (
	Account          types.SectionID = "account"
	Flair            types.SectionID = "flair"
	LinksAndComments types.SectionID = "links_and_comments"
	Messages         types.SectionID = "messages"
	Moderation       types.SectionID = "moderation"
	Misc             types.SectionID = "misc"
	Listings         types.SectionID = "listings"
	Search           types.SectionID = "search"
	Subreddits       types.SectionID = "subreddits"
	Users            types.SectionID = "users"
)

var (
	// ErrUnknownSection is matched by every UnknownSectionError.
	ErrUnknownSection = errors.New("unknown section")

	// ErrDuplicateSection is returned when a catalog declares an id twice.
	ErrDuplicateSection = errors.New("duplicate section")
)

// UnknownSectionError reports a section id missing from the registry.
type UnknownSectionError struct {
	ID types.SectionID
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section %q", e.ID)
}

// Is makes errors.Is(err, ErrUnknownSection) true.
func (e *UnknownSectionError) Is(target error) bool {
	return target == ErrUnknownSection
}

// Section is one documentation grouping.
type Section struct {
	// ID is the stable identifier endpoints refer to
	ID types.SectionID

	// Title is the display title
	Title string

	// Description is optional markdown shown under the title
	Description string
}

// Registry is an ordered, read-only section catalog.
type Registry struct {
	sections []Section
	byID     map[types.SectionID]int
}

// New builds a registry preserving the given order.
func New(sections ...Section) (*Registry, error) {
	r := &Registry{
		sections: make([]Section, 0, len(sections)),
		byID:     make(map[types.SectionID]int, len(sections)),
	}
	for _, s := range sections {
		if s.ID == "" {
			return nil, fmt.Errorf("section id cannot be empty")
		}
		if _, exists := r.byID[s.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSection, s.ID)
		}
		r.byID[s.ID] = len(r.sections)
		r.sections = append(r.sections, s)
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(sections ...Section) *Registry {
	r, err := New(sections...)
	if err != nil {
		panic(fmt.Sprintf("failed to build section registry: %v", err))
	}
	return r
}

// defaultSections is the built-in catalog in display order.
var defaultSections = []Section{
	{ID: Account, Title: "account"},
	{ID: Flair, Title: "flair"},
	{ID: LinksAndComments, Title: "links & comments"},
	{ID: Messages, Title: "private messages"},
	{ID: Moderation, Title: "moderation"},
	{ID: Misc, Title: "misc"},
	{ID: Listings, Title: "listings"},
	{ID: Search, Title: "search"},
	{ID: Subreddits, Title: "subreddits"},
	{ID: Users, Title: "users"},
}

// Default returns the built-in catalog.
func Default() *Registry {
	return MustNew(defaultSections...)
}

// FromConfig builds a registry from configuration. An empty list yields the
// built-in catalog.
func FromConfig(cfg []config.SectionConfig) (*Registry, error) {
	if len(cfg) == 0 {
		return Default(), nil
	}
	list := make([]Section, 0, len(cfg))
	for _, s := range cfg {
		list = append(list, Section{
			ID:          types.SectionID(s.ID),
			Title:       s.Title,
			Description: s.Description,
		})
	}
	return New(list...)
}

// TitleOf returns the display title of a section.
func (r *Registry) TitleOf(id types.SectionID) (string, error) {
	s, err := r.Get(id)
	if err != nil {
		return "", err
	}
	return s.Title, nil
}

// Get returns the section with the given id.
func (r *Registry) Get(id types.SectionID) (Section, error) {
	i, ok := r.byID[id]
	if !ok {
		return Section{}, &UnknownSectionError{ID: id}
	}
	return r.sections[i], nil
}

// Has reports whether the section is registered.
func (r *Registry) Has(id types.SectionID) bool {
	_, ok := r.byID[id]
	return ok
}

// Sections returns the sections in declared order.
func (r *Registry) Sections() []Section {
	out := make([]Section, len(r.sections))
	copy(out, r.sections)
	return out
}

// IDs returns the section ids in declared order.
func (r *Registry) IDs() []types.SectionID {
	ids := make([]types.SectionID, len(r.sections))
	for i, s := range r.sections {
		ids[i] = s.ID
	}
	return ids
}

// Len returns the number of sections.
func (r *Registry) Len() int {
	return len(r.sections)
}
