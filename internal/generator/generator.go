// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package generator runs the content generation pipeline: it claims a
// pending presentation, asks the active AI provider for the full deck via
// one forced tool call, resolves picture placeholders to image URLs, and
// persists the resulting slide set.
package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"deckgen/internal/ai"
	"deckgen/internal/models"
)

// ToolCaller is the AI surface the pipeline needs; *ai.Registry satisfies it.
type ToolCaller interface {
	CallTool(ctx context.Context, systemPrompt, userPrompt string, tool ai.Tool) (json.RawMessage, error)
}

// ImageResolver attaches image URLs (or failure notes) to picture
// placeholders; *images.Resolver satisfies it.
type ImageResolver interface {
	Resolve(ctx context.Context, slides []models.Slide)
}

// PresentationStore is the subset of the presentation store the pipeline
// drives the status lifecycle through.
type PresentationStore interface {
	FindByID(id uuid.UUID) (*models.Presentation, error)
	TryStart(id uuid.UUID) (bool, error)
	MarkCompleted(id uuid.UUID) error
	MarkFailed(id uuid.UUID) error
}

// SlideStore persists generated slide sets.
type SlideStore interface {
	ReplaceAll(presentationID uuid.UUID, slides []models.Slide) ([]models.Slide, error)
}

// Generator executes generation passes over presentations.
type Generator struct {
	llm           ToolCaller
	resolver      ImageResolver
	presentations PresentationStore
	slides        SlideStore
}

func New(llm ToolCaller, resolver ImageResolver, presentations PresentationStore, slides SlideStore) *Generator {
	return &Generator{
		llm:           llm,
		resolver:      resolver,
		presentations: presentations,
		slides:        slides,
	}
}

// Run performs one generation pass. Only a pending presentation can be
// claimed; a pass that loses the claim returns nil without touching
// anything. Any failure after the claim moves the presentation to failed.
func (g *Generator) Run(ctx context.Context, id uuid.UUID) error {
	p, err := g.presentations.FindByID(id)
	if err != nil {
		return fmt.Errorf("generation %s: %w", id, err)
	}
	if p == nil {
		return fmt.Errorf("generation %s: presentation not found", id)
	}

	claimed, err := g.presentations.TryStart(id)
	if err != nil {
		return fmt.Errorf("generation %s: %w", id, err)
	}
	if !claimed {
		slog.Info("presentation not pending, skipping generation", "id", id, "status", p.Status)
		return nil
	}

	slides, err := g.generate(ctx, p)
	if err != nil {
		slog.Error("generation failed", "id", id, "topic", p.Topic, "error", err)
		if ferr := g.presentations.MarkFailed(id); ferr != nil {
			slog.Error("failed to record generation failure", "id", id, "error", ferr)
		}
		return fmt.Errorf("generation %s: %w", id, err)
	}

	if err := g.presentations.MarkCompleted(id); err != nil {
		return fmt.Errorf("generation %s: %w", id, err)
	}
	slog.Info("generation completed", "id", id, "topic", p.Topic, "slides", len(slides))
	return nil
}

func (g *Generator) generate(ctx context.Context, p *models.Presentation) ([]models.Slide, error) {
	raw, err := g.llm.CallTool(ctx, SystemPrompt(), UserPrompt(p), DeckTool())
	if err != nil {
		return nil, fmt.Errorf("ai call: %w", err)
	}

	slides, err := ParseSlides(raw)
	if err != nil {
		return nil, err
	}
	if len(slides) != p.NumSlides {
		slog.Warn("model returned a different slide count than requested",
			"id", p.ID, "requested", p.NumSlides, "got", len(slides))
	}

	g.resolver.Resolve(ctx, slides)

	stored, err := g.slides.ReplaceAll(p.ID, slides)
	if err != nil {
		return nil, err
	}
	return stored, nil
}
