// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package layouts defines the fixed catalog of slide layouts available to
// generated presentations. The catalog mirrors the eleven layouts of the
// default PowerPoint template: every layout has a stable numeric ID, a
// canonical name, and an ordered list of named placeholders. Both the
// generation contract and the document assembler consult this single table,
// so the two can never drift apart.
package layouts

import (
	"errors"
	"fmt"
	"strings"
)

// PlaceholderKind describes what a placeholder accepts.
type PlaceholderKind string

const (
	// KindText placeholders take a single short string (titles, captions).
	KindText PlaceholderKind = "text"
	// KindList placeholders take an ordered list of strings (bullet points).
	KindList PlaceholderKind = "list"
	// KindImage placeholders take a descriptive image-search prompt which is
	// later resolved to a picture URL.
	KindImage PlaceholderKind = "image"
)

// ErrUnknownLayout is returned for layout IDs outside the catalog.
var ErrUnknownLayout = errors.New("layouts: unknown layout id")

// PlaceholderSpec is one named slot within a layout.
type PlaceholderSpec struct {
	Name string
	Kind PlaceholderKind
}

// Layout is one entry of the catalog.
type Layout struct {
	ID           int
	Name         string
	Placeholders []PlaceholderSpec
}

// MinID and MaxID bound the valid layout ID range.
const (
	MinID = 0
	MaxID = 10
)

// The IDs match the slide_layouts indices of the default PowerPoint
// template, so the assembler can map records straight onto it.
var catalog = [...]Layout{
	{ID: 0, Name: "Title Slide", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Subtitle 2", Kind: KindText},
	}},
	{ID: 1, Name: "Title and Content", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Content Placeholder 2", Kind: KindList},
	}},
	{ID: 2, Name: "Section Header", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Text Placeholder 2", Kind: KindList},
	}},
	{ID: 3, Name: "Two Content", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Content Placeholder 2", Kind: KindList},
		{Name: "Content Placeholder 3", Kind: KindList},
	}},
	{ID: 4, Name: "Comparison", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Text Placeholder 2", Kind: KindText},
		{Name: "Content Placeholder 3", Kind: KindList},
		{Name: "Text Placeholder 4", Kind: KindText},
		{Name: "Content Placeholder 5", Kind: KindList},
	}},
	{ID: 5, Name: "Title Only", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
	}},
	{ID: 6, Name: "Blank", Placeholders: nil},
	{ID: 7, Name: "Content with Caption", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Content Placeholder 2", Kind: KindList},
		{Name: "Text Placeholder 3", Kind: KindList},
	}},
	{ID: 8, Name: "Picture with Caption", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Picture Placeholder 2", Kind: KindImage},
		{Name: "Text Placeholder 3", Kind: KindList},
	}},
	{ID: 9, Name: "Title and Vertical Text", Placeholders: []PlaceholderSpec{
		{Name: "Title 1", Kind: KindText},
		{Name: "Vertical Text Placeholder 2", Kind: KindList},
	}},
	{ID: 10, Name: "Vertical Title and Text", Placeholders: []PlaceholderSpec{
		{Name: "Vertical Title 1", Kind: KindText},
		{Name: "Vertical Text Placeholder 2", Kind: KindList},
	}},
}

// Get returns the layout for the given ID, or ErrUnknownLayout if the ID
// falls outside the catalog.
func Get(id int) (Layout, error) {
	if id < MinID || id > MaxID {
		return Layout{}, fmt.Errorf("%w: %d", ErrUnknownLayout, id)
	}
	return catalog[id], nil
}

// All returns the catalog in ID order. The returned slice is shared; callers
// must not modify it.
func All() []Layout {
	return catalog[:]
}

// Placeholder looks up a placeholder spec by exact name within a layout.
func (l Layout) Placeholder(name string) (PlaceholderSpec, bool) {
	for _, p := range l.Placeholders {
		if p.Name == name {
			return p, true
		}
	}
	return PlaceholderSpec{}, false
}

// IsImagePlaceholder reports whether a placeholder name denotes a picture
// slot. The match is a case-insensitive substring check, mirroring how the
// image resolver decides which values are search prompts.
func IsImagePlaceholder(name string) bool {
	return strings.Contains(strings.ToLower(name), "picture")
}
