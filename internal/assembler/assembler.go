// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assembler turns stored slide content and a resolved theme into a
// finished pptx deck.
package assembler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"deckgen/internal/layouts"
	"deckgen/internal/models"
	"deckgen/internal/pptx"
	"deckgen/internal/theme"
)

// ImageFetcher downloads a resolved image URL into bytes for embedding.
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type Assembler struct {
	fetcher ImageFetcher
}

func New(fetcher ImageFetcher) *Assembler {
	return &Assembler{fetcher: fetcher}
}

// Build renders the slides, in index order, into a deck styled with the
// given theme. Content entries that name no placeholder of their slide's
// layout are skipped; a slide with an unknown layout id fails the build.
func (a *Assembler) Build(ctx context.Context, th theme.Theme, slides []models.Slide) (*pptx.Deck, error) {
	ordered := make([]models.Slide, len(slides))
	copy(ordered, slides)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Index < ordered[j].Index })

	deck := pptx.New()
	for _, sl := range ordered {
		layout, err := layouts.Get(sl.LayoutID)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", sl.Index, err)
		}
		ps := deck.AddSlide(layout.Name)
		for _, ph := range sl.Content {
			spec, ok := layout.Placeholder(ph.Name)
			if !ok {
				slog.Warn("content names no placeholder on layout, skipping",
					"layout", layout.Name, "placeholder", ph.Name)
				continue
			}
			a.placeShape(ctx, ps, spec, ph)
		}
	}
	deck.ApplyTheme(deckTheme(th))
	return deck, nil
}

func (a *Assembler) placeShape(ctx context.Context, ps *pptx.Slide, spec layouts.PlaceholderSpec, ph models.Placeholder) {
	if spec.Kind == layouts.KindImage {
		a.placeImage(ctx, ps, ph)
		return
	}
	if ph.Value.Empty() {
		return
	}
	ps.AddTextBox(pptx.TextBox{
		Name:       ph.Name,
		Role:       roleFor(ph.Name),
		Vertical:   strings.Contains(ph.Name, "Vertical"),
		Paragraphs: paragraphs(ph.Value),
	})
}

// placeImage embeds the resolved picture, or falls back to a caption box
// carrying the resolver's failure note so the slide is never silently blank.
func (a *Assembler) placeImage(ctx context.Context, ps *pptx.Slide, ph models.Placeholder) {
	url, ok := ph.ResolvedImage()
	if !ok {
		note := ph.ImageURL
		if note == "" {
			note = ph.Value.String()
		}
		ps.AddTextBox(pptx.TextBox{Name: ph.Name, Paragraphs: []string{note}})
		return
	}
	data, err := a.fetcher.Fetch(ctx, url)
	if err != nil {
		slog.Warn("image download failed, placing caption instead", "url", url, "error", err)
		ps.AddTextBox(pptx.TextBox{Name: ph.Name, Paragraphs: []string{ph.Value.String()}})
		return
	}
	ps.AddPicture(ph.Name, data)
}

func paragraphs(v models.Value) []string {
	if v.List {
		return v.Lines
	}
	return []string{v.Text}
}

// roleFor classifies a placeholder for theme styling. Only the main title
// box takes the title typography; subtitles style as content.
func roleFor(name string) pptx.Role {
	if strings.HasPrefix(name, "Title ") || strings.HasPrefix(name, "Vertical Title ") {
		return pptx.RoleTitle
	}
	return pptx.RoleBody
}

func deckTheme(th theme.Theme) pptx.Theme {
	return pptx.Theme{
		Background:    rgb(th.Colors.BackgroundColor),
		TitleFont:     th.Fonts.TitleFont,
		TitleSizePt:   th.FontSizes.TitleSize,
		TitleColor:    rgb(th.Colors.TitleColor),
		ContentFont:   th.Fonts.ContentFont,
		ContentSizePt: th.FontSizes.ContentSize,
		ContentColor:  rgb(th.Colors.ContentColor),
	}
}

func rgb(c theme.RGB) pptx.Color {
	return pptx.Color{R: c[0], G: c[1], B: c[2]}
}
