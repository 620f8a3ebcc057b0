// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package assembler

import (
	"context"
	"errors"
	"testing"

	"deckgen/internal/images"
	"deckgen/internal/layouts"
	"deckgen/internal/models"
	"deckgen/internal/pptx"
	"deckgen/internal/theme"
)

type fakeFetcher struct {
	data  []byte
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	f.calls = append(f.calls, url)
	return f.data, f.err
}

func textBoxes(s *pptx.Slide) []*pptx.TextBox {
	var boxes []*pptx.TextBox
	for _, sh := range s.Shapes {
		if b, ok := sh.(*pptx.TextBox); ok {
			boxes = append(boxes, b)
		}
	}
	return boxes
}

func picturesOf(s *pptx.Slide) []*pptx.Picture {
	var pics []*pptx.Picture
	for _, sh := range s.Shapes {
		if p, ok := sh.(*pptx.Picture); ok {
			pics = append(pics, p)
		}
	}
	return pics
}

func TestBuildOrdersSlidesAndFillsPlaceholders(t *testing.T) {
	a := New(&fakeFetcher{})
	slides := []models.Slide{
		{
			LayoutID: 1, LayoutName: "Title and Content", Index: 1,
			Content: []models.Placeholder{
				{Name: "Title 1", Value: models.TextValue("Second")},
				{Name: "Content Placeholder 2", Value: models.ListValue("a", "b", "c")},
			},
		},
		{
			LayoutID: 0, LayoutName: "Title Slide", Index: 0,
			Content: []models.Placeholder{
				{Name: "Title 1", Value: models.TextValue("First")},
				{Name: "Subtitle 2", Value: models.TextValue("An opener")},
			},
		},
	}

	deck, err := a.Build(context.Background(), theme.Default(), slides)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if deck.SlideCount() != 2 {
		t.Fatalf("slide count = %d, want 2", deck.SlideCount())
	}

	first := textBoxes(deck.Slides()[0])
	if len(first) != 2 || first[0].Paragraphs[0] != "First" {
		t.Fatalf("index order not honored, first slide title = %+v", first)
	}
	if first[0].Role != pptx.RoleTitle {
		t.Error("title placeholder should take the title role")
	}
	if first[1].Role != pptx.RoleBody {
		t.Error("subtitle should style as content")
	}

	second := textBoxes(deck.Slides()[1])
	if len(second) != 2 {
		t.Fatalf("second slide boxes = %d, want 2", len(second))
	}
	got := second[1].Paragraphs
	if len(got) != 3 || got[0] != "a" || got[2] != "c" {
		t.Errorf("list value should map to one paragraph per line, got %v", got)
	}
}

func TestBuildAppliesTheme(t *testing.T) {
	a := New(&fakeFetcher{})
	slides := []models.Slide{{
		LayoutID: 0, Index: 0,
		Content: []models.Placeholder{{Name: "Title 1", Value: models.TextValue("T")}},
	}}

	th := theme.Default()
	deck, err := a.Build(context.Background(), th, slides)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	box := textBoxes(deck.Slides()[0])[0]
	if box.Font != th.Fonts.TitleFont {
		t.Errorf("title font = %q, want %q", box.Font, th.Fonts.TitleFont)
	}
	if box.SizePt != th.FontSizes.TitleSize {
		t.Errorf("title size = %d, want %d", box.SizePt, th.FontSizes.TitleSize)
	}
	bg := deck.Slides()[0].Background
	if bg == nil || bg.Hex() != "F0F8FF" {
		t.Errorf("background = %v, want default alice blue", bg)
	}
}

func TestBuildUnknownLayoutFails(t *testing.T) {
	a := New(&fakeFetcher{})
	_, err := a.Build(context.Background(), theme.Default(), []models.Slide{{LayoutID: 42, Index: 0}})
	if !errors.Is(err, layouts.ErrUnknownLayout) {
		t.Fatalf("expected unknown layout error, got %v", err)
	}
}

func TestBuildSkipsUnknownAndEmptyContent(t *testing.T) {
	a := New(&fakeFetcher{})
	slides := []models.Slide{{
		LayoutID: 1, Index: 0,
		Content: []models.Placeholder{
			{Name: "Title 1", Value: models.TextValue("Kept")},
			{Name: "Not A Placeholder", Value: models.TextValue("dropped")},
			{Name: "Content Placeholder 2", Value: models.Value{}},
		},
	}}

	deck, err := a.Build(context.Background(), theme.Default(), slides)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	boxes := textBoxes(deck.Slides()[0])
	if len(boxes) != 1 || boxes[0].Name != "Title 1" {
		t.Fatalf("expected only the title box, got %+v", boxes)
	}
}

func TestBuildEmbedsResolvedImage(t *testing.T) {
	f := &fakeFetcher{data: []byte("img-bytes")}
	a := New(f)
	slides := []models.Slide{{
		LayoutID: 8, Index: 0,
		Content: []models.Placeholder{
			{Name: "Picture Placeholder 2", Value: models.TextValue("mountain lake"), ImageURL: "https://images.test/a.jpg"},
		},
	}}

	deck, err := a.Build(context.Background(), theme.Default(), slides)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	pics := picturesOf(deck.Slides()[0])
	if len(pics) != 1 {
		t.Fatalf("pictures = %d, want 1", len(pics))
	}
	if string(pics[0].Data) != "img-bytes" {
		t.Error("picture bytes not taken from the fetcher")
	}
	if len(f.calls) != 1 || f.calls[0] != "https://images.test/a.jpg" {
		t.Errorf("fetcher calls = %v", f.calls)
	}
}

func TestBuildPlacesCaptionWhenImageUnresolved(t *testing.T) {
	f := &fakeFetcher{}
	a := New(f)
	note := images.NoImagesPrefix + "mountain lake"
	slides := []models.Slide{{
		LayoutID: 8, Index: 0,
		Content: []models.Placeholder{
			{Name: "Picture Placeholder 2", Value: models.TextValue("mountain lake"), ImageURL: note},
		},
	}}

	deck, err := a.Build(context.Background(), theme.Default(), slides)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(f.calls) != 0 {
		t.Error("failure strings must not be fetched")
	}
	boxes := textBoxes(deck.Slides()[0])
	if len(boxes) != 1 || boxes[0].Paragraphs[0] != note {
		t.Fatalf("expected caption with resolver note, got %+v", boxes)
	}
}

func TestBuildPlacesCaptionWhenDownloadFails(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	a := New(f)
	slides := []models.Slide{{
		LayoutID: 8, Index: 0,
		Content: []models.Placeholder{
			{Name: "Picture Placeholder 2", Value: models.TextValue("mountain lake"), ImageURL: "https://images.test/a.jpg"},
		},
	}}

	deck, err := a.Build(context.Background(), theme.Default(), slides)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(picturesOf(deck.Slides()[0])) != 0 {
		t.Error("failed download must not embed a picture")
	}
	boxes := textBoxes(deck.Slides()[0])
	if len(boxes) != 1 || boxes[0].Paragraphs[0] != "mountain lake" {
		t.Fatalf("expected caption with the search query, got %+v", boxes)
	}
}
