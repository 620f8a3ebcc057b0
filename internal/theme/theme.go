// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package theme defines the visual theme applied to rendered decks and the
// merge-and-validate step every incoming theme goes through. Clients may
// send a partial theme; missing leaves are filled from the built-in default
// before validation, so validation always runs against a complete value.
package theme

import (
	"fmt"
	"slices"
)

// RGB is an exact three-channel color triple, each channel in [0,255].
type RGB [3]int

// Fonts names the two typefaces of a theme. Both are drawn from closed
// enumerations matching what the rendering template ships with.
type Fonts struct {
	TitleFont   string `json:"title_font"`
	ContentFont string `json:"content_font"`
}

// FontSizes holds point sizes for title and body runs.
type FontSizes struct {
	TitleSize   int `json:"title_size"`
	ContentSize int `json:"content_size"`
}

// Colors holds the three theme colors.
type Colors struct {
	BackgroundColor RGB `json:"background_color"`
	TitleColor      RGB `json:"title_color"`
	ContentColor    RGB `json:"content_color"`
}

// Theme is a complete, validated visual theme.
type Theme struct {
	Fonts     Fonts     `json:"fonts"`
	FontSizes FontSizes `json:"font_sizes"`
	Colors    Colors    `json:"colors"`
}

// Partial is a theme as accepted from clients: every leaf is optional.
// Nil fields take the default during Merge.
type Partial struct {
	Fonts     *PartialFonts     `json:"fonts,omitempty"`
	FontSizes *PartialFontSizes `json:"font_sizes,omitempty"`
	Colors    *PartialColors    `json:"colors,omitempty"`
}

// PartialFonts mirrors Fonts with optional leaves.
type PartialFonts struct {
	TitleFont   *string `json:"title_font,omitempty"`
	ContentFont *string `json:"content_font,omitempty"`
}

// PartialFontSizes mirrors FontSizes with optional leaves.
type PartialFontSizes struct {
	TitleSize   *int `json:"title_size,omitempty"`
	ContentSize *int `json:"content_size,omitempty"`
}

// PartialColors mirrors Colors with optional leaves.
type PartialColors struct {
	BackgroundColor *RGB `json:"background_color,omitempty"`
	TitleColor      *RGB `json:"title_color,omitempty"`
	ContentColor    *RGB `json:"content_color,omitempty"`
}

// Allowed font names. Title and content draw from different sets, matching
// the template's embedded typefaces.
var (
	TitleFonts   = []string{"Lucida Console", "Arial", "Times New Roman", "Verdana"}
	ContentFonts = []string{"Calibri", "Arial", "Helvetica", "Georgia"}
)

// Size bounds in points.
const (
	MinTitleSize   = 10
	MaxTitleSize   = 100
	MinContentSize = 8
	MaxContentSize = 72
)

// Default returns the built-in default theme.
func Default() Theme {
	return Theme{
		Fonts:     Fonts{TitleFont: "Lucida Console", ContentFont: "Calibri"},
		FontSizes: FontSizes{TitleSize: 28, ContentSize: 18},
		Colors: Colors{
			BackgroundColor: RGB{240, 248, 255},
			TitleColor:      RGB{0, 51, 102},
			ContentColor:    RGB{51, 51, 51},
		},
	}
}

// Merge fills every missing leaf of a partial theme from the default,
// object by object. A nil partial yields the default theme unchanged.
// Merge is idempotent: merging an already-complete theme changes nothing.
func Merge(p *Partial) Theme {
	return MergeOver(Default(), p)
}

// MergeOver applies the provided leaves of a partial on top of an existing
// theme, leaving every other leaf as it was. Used for partial edits, where
// the base is the stored theme rather than the default.
func MergeOver(base Theme, p *Partial) Theme {
	t := base
	if p == nil {
		return t
	}
	if p.Fonts != nil {
		if p.Fonts.TitleFont != nil {
			t.Fonts.TitleFont = *p.Fonts.TitleFont
		}
		if p.Fonts.ContentFont != nil {
			t.Fonts.ContentFont = *p.Fonts.ContentFont
		}
	}
	if p.FontSizes != nil {
		if p.FontSizes.TitleSize != nil {
			t.FontSizes.TitleSize = *p.FontSizes.TitleSize
		}
		if p.FontSizes.ContentSize != nil {
			t.FontSizes.ContentSize = *p.FontSizes.ContentSize
		}
	}
	if p.Colors != nil {
		if p.Colors.BackgroundColor != nil {
			t.Colors.BackgroundColor = *p.Colors.BackgroundColor
		}
		if p.Colors.TitleColor != nil {
			t.Colors.TitleColor = *p.Colors.TitleColor
		}
		if p.Colors.ContentColor != nil {
			t.Colors.ContentColor = *p.Colors.ContentColor
		}
	}
	return t
}

// AsPartial converts a complete theme back to the partial form with every
// leaf present. Useful for round-trip checks and for re-merging stored themes.
func (t Theme) AsPartial() *Partial {
	return &Partial{
		Fonts: &PartialFonts{
			TitleFont:   &t.Fonts.TitleFont,
			ContentFont: &t.Fonts.ContentFont,
		},
		FontSizes: &PartialFontSizes{
			TitleSize:   &t.FontSizes.TitleSize,
			ContentSize: &t.FontSizes.ContentSize,
		},
		Colors: &PartialColors{
			BackgroundColor: &t.Colors.BackgroundColor,
			TitleColor:      &t.Colors.TitleColor,
			ContentColor:    &t.Colors.ContentColor,
		},
	}
}

// ValidationError reports the first theme field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("theme: invalid %s: %s", e.Field, e.Reason)
}

// Validate checks a complete theme against the schema. It is always called
// after Merge, never before, so a partial client theme can omit any field
// and still validate. Returns nil when the theme is valid.
func Validate(t Theme) *ValidationError {
	if !slices.Contains(TitleFonts, t.Fonts.TitleFont) {
		return &ValidationError{Field: "fonts.title_font", Reason: fmt.Sprintf("%q is not an allowed title font", t.Fonts.TitleFont)}
	}
	if !slices.Contains(ContentFonts, t.Fonts.ContentFont) {
		return &ValidationError{Field: "fonts.content_font", Reason: fmt.Sprintf("%q is not an allowed content font", t.Fonts.ContentFont)}
	}
	if t.FontSizes.TitleSize < MinTitleSize || t.FontSizes.TitleSize > MaxTitleSize {
		return &ValidationError{Field: "font_sizes.title_size", Reason: fmt.Sprintf("%d is outside [%d,%d]", t.FontSizes.TitleSize, MinTitleSize, MaxTitleSize)}
	}
	if t.FontSizes.ContentSize < MinContentSize || t.FontSizes.ContentSize > MaxContentSize {
		return &ValidationError{Field: "font_sizes.content_size", Reason: fmt.Sprintf("%d is outside [%d,%d]", t.FontSizes.ContentSize, MinContentSize, MaxContentSize)}
	}

	colors := []struct {
		field string
		value RGB
	}{
		{"colors.background_color", t.Colors.BackgroundColor},
		{"colors.title_color", t.Colors.TitleColor},
		{"colors.content_color", t.Colors.ContentColor},
	}
	for _, c := range colors {
		for i, ch := range c.value {
			if ch < 0 || ch > 255 {
				return &ValidationError{Field: c.field, Reason: fmt.Sprintf("channel %d is %d, outside [0,255]", i, ch)}
			}
		}
	}
	return nil
}

// Resolve merges a partial theme and validates the result in one step.
// This is the only path by which client theme input reaches storage.
func Resolve(p *Partial) (Theme, *ValidationError) {
	t := Merge(p)
	if verr := Validate(t); verr != nil {
		return Theme{}, verr
	}
	return t, nil
}
