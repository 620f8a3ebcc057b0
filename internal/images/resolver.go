// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package images

import (
	"context"
	"log/slog"

	"deckgen/internal/layouts"
	"deckgen/internal/models"
)

// Failure strings attached in place of an image URL. Neither starts with
// an http(s) scheme, which is how downstream consumers tell a genuine
// resolution from a degraded one (see models.Placeholder.ResolvedImage).
const (
	NoImagesPrefix    = "no images found for: "
	SearchFailedPrefix = "image search failed: "
)

// Resolver attaches image URLs to picture placeholders.
type Resolver struct {
	client *Client
}

// NewResolver creates a resolver backed by the given Pexels client.
func NewResolver(client *Client) *Resolver {
	return &Resolver{client: client}
}

// Resolve walks every slide in place and, for each picture placeholder with
// no pre-supplied URL, searches for the placeholder's text value and attaches
// the best match. A search with no results or a failed HTTP call attaches a
// descriptive string instead of failing: one missing image must never abort
// the whole deck.
func (r *Resolver) Resolve(ctx context.Context, slides []models.Slide) {
	for si := range slides {
		for pi := range slides[si].Content {
			ph := &slides[si].Content[pi]
			if !layouts.IsImagePlaceholder(ph.Name) || ph.ImageURL != "" {
				continue
			}

			query := ph.Value.String()
			url, err := r.client.SearchBestMatch(ctx, query)
			switch {
			case err != nil:
				slog.Warn("image search failed", "query", query, "error", err)
				ph.ImageURL = SearchFailedPrefix + err.Error()
			case url == "":
				slog.Info("no image match", "query", query)
				ph.ImageURL = NoImagesPrefix + query
			default:
				ph.ImageURL = url
			}
		}
	}
}
