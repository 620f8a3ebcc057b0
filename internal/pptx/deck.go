// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package pptx builds PowerPoint (.pptx) documents from a small shape model
// and writes them as OPC packages (zip of presentationml XML parts). It knows
// nothing about layouts or generation: callers add slides, text boxes and
// pictures, then apply a uniform theme and serialize.
package pptx

import "fmt"

// Color is an RGB triple.
type Color struct {
	R, G, B int
}

// Hex renders the color as an uppercase RRGGBB string for srgbClr values.
func (c Color) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Role classifies a text box for theme styling.
type Role int

const (
	// RoleTitle marks the slide's title run.
	RoleTitle Role = iota
	// RoleBody marks every non-title text run.
	RoleBody
)

// TextBox is a named text shape holding one or more paragraphs.
type TextBox struct {
	Name       string
	Role       Role
	Vertical   bool
	Paragraphs []string

	// Style, filled in by ApplyTheme. Zero values fall back to
	// application defaults when serialized.
	Font   string
	SizePt int
	Color  *Color
}

// Picture is an embedded image shape.
type Picture struct {
	Name string
	Data []byte
}

// Shape is either a *TextBox or a *Picture.
type Shape interface{ isShape() }

func (*TextBox) isShape() {}
func (*Picture) isShape() {}

// Slide is one slide of the deck. Shapes render in insertion order;
// auto-layout places the title at the top and splits the remaining body
// area evenly among the other shapes.
type Slide struct {
	Layout     string // informational label, e.g. "Picture with Caption"
	Background *Color
	Shapes     []Shape
}

// AddTextBox appends a text box to the slide and returns it.
func (s *Slide) AddTextBox(b TextBox) *TextBox {
	box := &b
	s.Shapes = append(s.Shapes, box)
	return box
}

// AddPicture appends an image shape to the slide.
func (s *Slide) AddPicture(name string, data []byte) *Picture {
	pic := &Picture{Name: name, Data: data}
	s.Shapes = append(s.Shapes, pic)
	return pic
}

// Deck is an in-memory presentation document.
type Deck struct {
	slides []*Slide
}

// New creates an empty deck.
func New() *Deck {
	return &Deck{}
}

// AddSlide appends a slide with the given layout label and returns it.
func (d *Deck) AddSlide(layout string) *Slide {
	s := &Slide{Layout: layout}
	d.slides = append(d.slides, s)
	return s
}

// SlideCount returns the number of slides added so far.
func (d *Deck) SlideCount() int {
	return len(d.slides)
}

// Slides returns the deck's slides in order.
func (d *Deck) Slides() []*Slide {
	return d.slides
}

// Theme is the uniform styling applied to a whole deck.
type Theme struct {
	Background    Color
	TitleFont     string
	TitleSizePt   int
	TitleColor    Color
	ContentFont   string
	ContentSizePt int
	ContentColor  Color
}

// ApplyTheme styles every slide: solid background fill, title boxes with
// the title font/size/color, all other text boxes with the content
// font/size/color. Applying the same theme twice is a no-op, and the result
// does not depend on slide order.
func (d *Deck) ApplyTheme(t Theme) {
	for _, s := range d.slides {
		bg := t.Background
		s.Background = &bg
		for _, sh := range s.Shapes {
			box, ok := sh.(*TextBox)
			if !ok {
				continue
			}
			if box.Role == RoleTitle {
				box.Font = t.TitleFont
				box.SizePt = t.TitleSizePt
				c := t.TitleColor
				box.Color = &c
			} else {
				box.Font = t.ContentFont
				box.SizePt = t.ContentSizePt
				c := t.ContentColor
				box.Color = &c
			}
		}
	}
}
