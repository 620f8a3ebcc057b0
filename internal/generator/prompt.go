// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"fmt"
	"strings"

	"deckgen/internal/layouts"
	"deckgen/internal/models"
)

// SystemPrompt describes the deck-building task and the full layout
// contract. It is identical for every request; per-presentation details
// travel in the user prompt.
func SystemPrompt() string {
	var b strings.Builder
	b.WriteString("You are a presentation designer. Build the complete content of a slide deck ")
	b.WriteString("by calling the generate_pptx tool exactly once.\n\n")
	b.WriteString("Available slide layouts and their placeholders:\n")
	for _, l := range layouts.All() {
		fmt.Fprintf(&b, "- layout_id %d, layout_name %q:", l.ID, l.Name)
		if len(l.Placeholders) == 0 {
			b.WriteString(" no placeholders\n")
			continue
		}
		b.WriteString("\n")
		for _, ph := range l.Placeholders {
			fmt.Fprintf(&b, "    - %q (%s)\n", ph.Name, describeKind(ph.Kind))
		}
	}
	b.WriteString("\nRules:\n")
	b.WriteString("- Produce exactly the requested number of slides.\n")
	b.WriteString("- The first slide uses layout_id 0 (Title Slide) introducing the topic.\n")
	b.WriteString("- The last slide is a short thank-you or closing slide.\n")
	b.WriteString("- Every content entry must use a placeholder name defined by the slide's layout, spelled exactly.\n")
	b.WriteString("- layout_name must match the layout_id.\n")
	b.WriteString("- For picture placeholders, set value to a short image search query describing the desired photo.\n")
	b.WriteString("- Vary the layouts across the deck; do not use the same layout for every slide.\n")
	return b.String()
}

func describeKind(k layouts.PlaceholderKind) string {
	switch k {
	case layouts.KindList:
		return "list of bullet strings"
	case layouts.KindImage:
		return "image search query string"
	default:
		return "single text string"
	}
}

// UserPrompt carries the per-presentation request.
func UserPrompt(p *models.Presentation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s\n", p.Topic)
	if p.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Description)
	}
	fmt.Fprintf(&b, "Number of slides: %d\n", p.NumSlides)
	return b.String()
}
