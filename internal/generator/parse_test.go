// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"deckgen/internal/layouts"
)

const validArgs = `{
	"slides": [
		{
			"layout_id": 0,
			"layout_name": "Title Slide",
			"content": [
				{"name": "Title 1", "value": "Go Concurrency"},
				{"name": "Subtitle 2", "value": "Patterns that scale"}
			]
		},
		{
			"layout_id": 8,
			"layout_name": "Picture with Caption",
			"content": [
				{"name": "Title 1", "value": "In the wild"},
				{"name": "Picture Placeholder 2", "value": "gophers in a server room"},
				{"name": "Text Placeholder 3", "value": ["first point", "second point"]}
			]
		}
	]
}`

func TestParseSlidesValid(t *testing.T) {
	slides, err := ParseSlides(json.RawMessage(validArgs))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(slides) != 2 {
		t.Fatalf("slides = %d, want 2", len(slides))
	}
	if slides[0].Index != 0 || slides[1].Index != 1 {
		t.Error("indices not assigned in order")
	}
	if slides[1].LayoutName != "Picture with Caption" {
		t.Errorf("layout name = %q", slides[1].LayoutName)
	}

	caption := slides[1].Content[2]
	if !caption.Value.List || len(caption.Value.Lines) != 2 {
		t.Errorf("list value not decoded: %+v", caption.Value)
	}
	for _, sl := range slides {
		for _, ph := range sl.Content {
			if ph.ID == "" {
				t.Error("placeholder id not assigned")
			}
			if ph.ImageURL != "" {
				t.Error("image url must be empty before resolution")
			}
		}
	}
}

func TestParseSlidesRejections(t *testing.T) {
	tests := []struct {
		name string
		args string
		want string
	}{
		{"empty deck", `{"slides": []}`, "no slides"},
		{"layout name mismatch", `{"slides": [{"layout_id": 0, "layout_name": "Blank", "content": []}]}`, "does not match"},
		{"unknown placeholder", `{"slides": [{"layout_id": 5, "layout_name": "Title Only", "content": [{"name": "Content Placeholder 2", "value": "x"}]}]}`, "no placeholder"},
		{"duplicate placeholder", `{"slides": [{"layout_id": 5, "layout_name": "Title Only", "content": [{"name": "Title 1", "value": "a"}, {"name": "Title 1", "value": "b"}]}]}`, "filled twice"},
		{"extraneous field", `{"slides": [{"layout_id": 5, "layout_name": "Title Only", "speaker_notes": "hi", "content": []}]}`, "unknown field"},
		{"array in text placeholder", `{"slides": [{"layout_id": 5, "layout_name": "Title Only", "content": [{"name": "Title 1", "value": ["a", "b"]}]}]}`, "wrong value shape"},
		{"array in image placeholder", `{"slides": [{"layout_id": 8, "layout_name": "Picture with Caption", "content": [{"name": "Picture Placeholder 2", "value": ["gopher", "server room"]}]}]}`, "wrong value shape"},
		{"string in list placeholder", `{"slides": [{"layout_id": 1, "layout_name": "Title and Content", "content": [{"name": "Content Placeholder 2", "value": "just one line"}]}]}`, "wrong value shape"},
		{"not json", `generate away!`, "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSlides(json.RawMessage(tt.args))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseSlidesUnknownLayout(t *testing.T) {
	_, err := ParseSlides(json.RawMessage(`{"slides": [{"layout_id": 11, "layout_name": "Nope", "content": []}]}`))
	if !errors.Is(err, layouts.ErrUnknownLayout) {
		t.Fatalf("expected unknown layout error, got %v", err)
	}
}

func TestParseSlidesTooMany(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"slides": [`)
	for i := 0; i < 21; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"layout_id": 6, "layout_name": "Blank", "content": []}`)
	}
	b.WriteString(`]}`)

	_, err := ParseSlides(json.RawMessage(b.String()))
	if err == nil || !strings.Contains(err.Error(), "maximum") {
		t.Fatalf("expected slide cap error, got %v", err)
	}
}
