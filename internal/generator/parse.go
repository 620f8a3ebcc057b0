// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"deckgen/internal/layouts"
	"deckgen/internal/models"
)

// Wire form of the tool call arguments. Decoded strictly so a model that
// strays from the schema fails loudly instead of producing a mangled deck.
type toolPayload struct {
	Slides []toolSlide `json:"slides"`
}

type toolSlide struct {
	LayoutID   int           `json:"layout_id"`
	LayoutName string        `json:"layout_name"`
	Content    []toolContent `json:"content"`
}

type toolContent struct {
	Name  string       `json:"name"`
	Value models.Value `json:"value"`
}

// ParseSlides validates the raw tool arguments against the layout catalog
// and produces the slide records to persist. Placeholder IDs are assigned
// here; the model never supplies them.
func ParseSlides(raw json.RawMessage) ([]models.Slide, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	var payload toolPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode tool arguments: %w", err)
	}
	if len(payload.Slides) == 0 {
		return nil, fmt.Errorf("tool arguments contain no slides")
	}
	if len(payload.Slides) > models.MaxSlides {
		return nil, fmt.Errorf("tool arguments contain %d slides, maximum is %d", len(payload.Slides), models.MaxSlides)
	}

	slides := make([]models.Slide, 0, len(payload.Slides))
	for i, ts := range payload.Slides {
		layout, err := layouts.Get(ts.LayoutID)
		if err != nil {
			return nil, fmt.Errorf("slide %d: %w", i, err)
		}
		if ts.LayoutName != layout.Name {
			return nil, fmt.Errorf("slide %d: layout_name %q does not match layout %d (%s)",
				i, ts.LayoutName, layout.ID, layout.Name)
		}

		seen := make(map[string]bool, len(ts.Content))
		content := make([]models.Placeholder, 0, len(ts.Content))
		for _, tc := range ts.Content {
			ph, ok := layout.Placeholder(tc.Name)
			if !ok {
				return nil, fmt.Errorf("slide %d: layout %q has no placeholder %q", i, layout.Name, tc.Name)
			}
			// List placeholders take arrays, text and image placeholders
			// take single strings.
			if wantList := ph.Kind == layouts.KindList; tc.Value.List != wantList {
				return nil, fmt.Errorf("slide %d: placeholder %q (%s) has the wrong value shape",
					i, tc.Name, ph.Kind)
			}
			if seen[tc.Name] {
				return nil, fmt.Errorf("slide %d: placeholder %q filled twice", i, tc.Name)
			}
			seen[tc.Name] = true
			content = append(content, models.Placeholder{
				ID:    uuid.NewString(),
				Name:  tc.Name,
				Value: tc.Value,
			})
		}

		slides = append(slides, models.Slide{
			LayoutID:   layout.ID,
			LayoutName: layout.Name,
			Index:      i,
			Content:    content,
		})
	}
	return slides, nil
}
