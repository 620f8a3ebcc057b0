// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Slide is one generated slide of a presentation. The layout name is a
// denormalized label kept consistent with LayoutID; Index is 0-based and
// contiguous within a presentation.
type Slide struct {
	ID             uuid.UUID     `json:"id"`
	PresentationID uuid.UUID     `json:"presentation_id"`
	LayoutID       int           `json:"layout_id"`
	LayoutName     string        `json:"layout_name"`
	Index          int           `json:"index"`
	Content        []Placeholder `json:"content"`
}

// Placeholder is one filled slot of a slide. Name must match a placeholder
// defined by the slide's layout. ImageURL is set only for picture slots,
// after image resolution; ID is assigned post-generation and never comes
// from the content model.
type Placeholder struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Value    Value  `json:"value"`
	ImageURL string `json:"image_url,omitempty"`
}

// ResolvedImage returns the placeholder's image URL if resolution genuinely
// succeeded. Failure strings attached by the resolver ("no images found…",
// "image search failed…") are not URLs and report false.
func (p Placeholder) ResolvedImage() (string, bool) {
	if strings.HasPrefix(p.ImageURL, "http://") || strings.HasPrefix(p.ImageURL, "https://") {
		return p.ImageURL, true
	}
	return "", false
}

// Value is a placeholder value: either a single text string or an ordered
// list of strings, depending on the placeholder kind. The wire and storage
// form is the bare JSON string or string array, matching the tool contract.
type Value struct {
	Text  string
	Lines []string
	List  bool
}

// TextValue builds a single-string value.
func TextValue(s string) Value { return Value{Text: s} }

// ListValue builds a string-list value.
func ListValue(lines ...string) Value { return Value{Lines: lines, List: true} }

// MarshalJSON renders the value as a bare string or array of strings.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.List {
		if v.Lines == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.Lines)
	}
	return json.Marshal(v.Text)
}

// UnmarshalJSON accepts either a JSON string or a JSON array of strings.
func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var lines []string
		if err := json.Unmarshal(data, &lines); err != nil {
			return fmt.Errorf("placeholder value: %w", err)
		}
		*v = Value{Lines: lines, List: true}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("placeholder value: %w", err)
	}
	*v = Value{Text: s}
	return nil
}

// String returns the text for single values and the joined lines for lists.
func (v Value) String() string {
	if v.List {
		return strings.Join(v.Lines, "\n")
	}
	return v.Text
}

// Empty reports whether the value carries no content.
func (v Value) Empty() bool {
	if v.List {
		return len(v.Lines) == 0
	}
	return v.Text == ""
}
