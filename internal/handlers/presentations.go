// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"deckgen/internal/assembler"
	"deckgen/internal/cache"
	"deckgen/internal/generator"
	"deckgen/internal/middleware"
	"deckgen/internal/models"
	"deckgen/internal/slug"
	"deckgen/internal/storage"
	"deckgen/internal/store"
	"deckgen/internal/theme"
)

const (
	maxTopicLen       = 300
	maxDescriptionLen = 2_000

	pptxContentType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

// Enqueuer schedules background generation passes; *generator.Runner
// satisfies it.
type Enqueuer interface {
	Enqueue(id uuid.UUID) error
}

// Presentations groups the presentation CRUD, generation, and download
// handlers.
type Presentations struct {
	presentations *store.PresentationStore
	slides        *store.SlideStore
	queue         Enqueuer
	assembler     *assembler.Assembler
	decks         *cache.DeckCache
	archive       *storage.Archive
}

// NewPresentations creates a new Presentations handler group. The deck
// cache and the archive are optional; nil disables the respective tier.
func NewPresentations(presentations *store.PresentationStore, slides *store.SlideStore, queue Enqueuer, asm *assembler.Assembler, decks *cache.DeckCache, archive *storage.Archive) *Presentations {
	return &Presentations{
		presentations: presentations,
		slides:        slides,
		queue:         queue,
		assembler:     asm,
		decks:         decks,
		archive:       archive,
	}
}

type createPresentationRequest struct {
	Topic       string         `json:"topic"`
	Description string         `json:"description"`
	NumSlides   int            `json:"num_slides"`
	Theme       *theme.Partial `json:"theme"`
}

// presentationResponse is a presentation plus, where loaded, its slides.
type presentationResponse struct {
	models.Presentation
	Slides []models.Slide `json:"slides,omitempty"`
}

func validateTopic(topic string) string {
	if strings.TrimSpace(topic) == "" {
		return "topic is required"
	}
	if utf8.RuneCountInString(topic) > maxTopicLen {
		return "topic is too long (max 300 characters)"
	}
	return ""
}

// Create registers a new presentation and queues its first generation pass.
func (h *Presentations) Create(w http.ResponseWriter, r *http.Request) {
	var req createPresentationRequest
	if !readJSON(w, r, &req) {
		return
	}

	if msg := validateTopic(req.Topic); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if utf8.RuneCountInString(req.Description) > maxDescriptionLen {
		writeError(w, http.StatusBadRequest, "description is too long (max 2,000 characters)")
		return
	}
	if req.NumSlides < models.MinSlides || req.NumSlides > models.MaxSlides {
		writeError(w, http.StatusBadRequest,
			fmt.Sprintf("num_slides must be between %d and %d", models.MinSlides, models.MaxSlides))
		return
	}

	th, verr := theme.Resolve(req.Theme)
	if verr != nil {
		writeError(w, http.StatusBadRequest, "invalid theme: "+verr.Error())
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	p, err := h.presentations.Create(sess.UserID, strings.TrimSpace(req.Topic), req.Description, req.NumSlides, th)
	if err != nil {
		slog.Error("create presentation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.enqueue(p.ID)
	writeJSON(w, http.StatusCreated, presentationResponse{Presentation: *p})
}

// List returns the caller's presentations, newest first, without slides.
func (h *Presentations) List(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	items, err := h.presentations.ListByUser(sess.UserID)
	if err != nil {
		slog.Error("list presentations failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if items == nil {
		items = []models.Presentation{}
	}
	writeJSON(w, http.StatusOK, items)
}

// Get returns one presentation with its slides.
func (h *Presentations) Get(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owned(w, r)
	if !ok {
		return
	}

	slides, err := h.slides.ListByPresentation(p.ID)
	if err != nil {
		slog.Error("list slides failed", "id", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, presentationResponse{Presentation: *p, Slides: slides})
}

type updatePresentationRequest struct {
	Topic       *string        `json:"topic"`
	Description *string        `json:"description"`
	NumSlides   *int           `json:"num_slides"`
	Theme       *theme.Partial `json:"theme"`
}

// Update applies a partial edit. Edits that change what the deck says
// (topic, description, slide count) discard the generated slides and queue
// a fresh pass; a theme-only edit keeps the slides, since the theme is
// applied at assembly time. An in-progress presentation cannot be edited.
func (h *Presentations) Update(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owned(w, r)
	if !ok {
		return
	}
	if p.Status == models.StatusInProgress {
		writeError(w, http.StatusConflict, "presentation is being generated, try again later")
		return
	}

	var req updatePresentationRequest
	if !readJSON(w, r, &req) {
		return
	}

	topic := p.Topic
	if req.Topic != nil {
		if msg := validateTopic(*req.Topic); msg != "" {
			writeError(w, http.StatusBadRequest, msg)
			return
		}
		topic = strings.TrimSpace(*req.Topic)
	}
	description := p.Description
	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) > maxDescriptionLen {
			writeError(w, http.StatusBadRequest, "description is too long (max 2,000 characters)")
			return
		}
		description = *req.Description
	}
	numSlides := p.NumSlides
	if req.NumSlides != nil {
		if *req.NumSlides < models.MinSlides || *req.NumSlides > models.MaxSlides {
			writeError(w, http.StatusBadRequest,
				fmt.Sprintf("num_slides must be between %d and %d", models.MinSlides, models.MaxSlides))
			return
		}
		numSlides = *req.NumSlides
	}

	th := theme.MergeOver(p.Theme, req.Theme)
	if verr := theme.Validate(th); verr != nil {
		writeError(w, http.StatusBadRequest, "invalid theme: "+verr.Error())
		return
	}

	contentChanged := topic != p.Topic || description != p.Description || numSlides != p.NumSlides

	updated, err := h.presentations.Update(p.ID, topic, description, numSlides, th)
	if err != nil {
		slog.Error("update presentation failed", "id", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "presentation not found")
		return
	}

	if contentChanged {
		if err := h.slides.DeleteByPresentation(p.ID); err != nil {
			slog.Error("discard slides failed", "id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if err := h.presentations.ResetPending(p.ID); err != nil {
			slog.Error("reset pending failed", "id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		updated.Status = models.StatusPending
		h.enqueue(p.ID)
	}

	writeJSON(w, http.StatusOK, presentationResponse{Presentation: *updated})
}

// Delete removes a presentation, its slides, and any cached renderings.
func (h *Presentations) Delete(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.presentations.Delete(p.ID); err != nil {
		slog.Error("delete presentation failed", "id", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if h.decks != nil {
		h.decks.Invalidate(r.Context(), p.ID)
	}
	if h.archive != nil {
		if err := h.archive.Remove(r.Context(), p.ID); err != nil {
			slog.Warn("deck archive cleanup failed", "id", p.ID, "error", err)
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// Generate queues a generation pass. Failed presentations are reset first,
// so the endpoint doubles as retry. A completed deck is final: its slides
// are only regenerated through a content-affecting edit, never re-rolled
// in place.
func (h *Presentations) Generate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owned(w, r)
	if !ok {
		return
	}
	switch p.Status {
	case models.StatusInProgress:
		writeError(w, http.StatusConflict, "generation already in progress")
		return
	case models.StatusCompleted:
		writeError(w, http.StatusConflict,
			"presentation is already completed; edit topic, description or num_slides to regenerate")
		return
	case models.StatusFailed:
		if err := h.presentations.ResetPending(p.ID); err != nil {
			slog.Error("reset pending failed", "id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		p.Status = models.StatusPending
	}

	if err := h.queue.Enqueue(p.ID); err != nil {
		if errors.Is(err, generator.ErrQueueFull) {
			writeError(w, http.StatusServiceUnavailable, "generation queue is full, try again later")
			return
		}
		slog.Error("enqueue failed", "id", p.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusAccepted, presentationResponse{Presentation: *p})
}

// Download assembles the deck and streams it as a pptx attachment.
// Only a completed presentation can be downloaded.
func (h *Presentations) Download(w http.ResponseWriter, r *http.Request) {
	p, ok := h.owned(w, r)
	if !ok {
		return
	}
	if p.Status != models.StatusCompleted {
		writeError(w, http.StatusConflict,
			fmt.Sprintf("presentation is not ready for download (status: %s)", p.Status))
		return
	}

	data := h.renderedDeck(r.Context(), p)
	if data == nil {
		slides, err := h.slides.ListByPresentation(p.ID)
		if err != nil {
			slog.Error("list slides failed", "id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		deck, err := h.assembler.Build(r.Context(), p.Theme, slides)
		if err != nil {
			slog.Error("deck assembly failed", "id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		data, err = deck.Bytes()
		if err != nil {
			slog.Error("deck serialization failed", "id", p.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		h.storeRenderedDeck(r.Context(), p, data)
	}

	filename := slug.Filename(p.Topic, time.Now())
	w.Header().Set("Content-Type", pptxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprint(len(data)))
	w.Write(data)
}

// renderedDeck looks up an already-rendered deck, first in the Valkey cache
// and then in the S3 archive. An archive hit repopulates the cache. Returns
// nil when neither tier has the current rendering.
func (h *Presentations) renderedDeck(ctx context.Context, p *models.Presentation) []byte {
	if h.decks != nil {
		if data, hit := h.decks.Get(ctx, p.ID, p.UpdatedAt); hit {
			return data
		}
	}
	if h.archive != nil {
		data, err := h.archive.Fetch(ctx, p.ID, p.UpdatedAt)
		if err != nil {
			slog.Warn("deck archive fetch failed", "id", p.ID, "error", err)
			return nil
		}
		if data != nil {
			if h.decks != nil {
				h.decks.Set(ctx, p.ID, p.UpdatedAt, data)
			}
			return data
		}
	}
	return nil
}

// storeRenderedDeck writes a freshly rendered deck to both tiers. Failures
// are logged and swallowed; the download already has the bytes in hand.
func (h *Presentations) storeRenderedDeck(ctx context.Context, p *models.Presentation, data []byte) {
	if h.decks != nil {
		h.decks.Set(ctx, p.ID, p.UpdatedAt, data)
	}
	if h.archive != nil {
		if err := h.archive.Store(ctx, p.ID, p.UpdatedAt, data); err != nil {
			slog.Warn("deck archive store failed", "id", p.ID, "error", err)
		}
	}
}

// owned loads the presentation in the URL and checks it belongs to the
// caller. Foreign presentations read as 404, the same as missing ones, so
// the API does not leak which IDs exist.
func (h *Presentations) owned(w http.ResponseWriter, r *http.Request) (*models.Presentation, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "presentation not found")
		return nil, false
	}

	p, err := h.presentations.FindByID(id)
	if err != nil {
		slog.Error("find presentation failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return nil, false
	}

	sess := middleware.SessionFromCtx(r.Context())
	if p == nil || p.UserID != sess.UserID {
		writeError(w, http.StatusNotFound, "presentation not found")
		return nil, false
	}
	return p, true
}

// enqueue schedules generation after a successful write. A full queue is
// not a request error at this point; the pass can be retried via Generate.
func (h *Presentations) enqueue(id uuid.UUID) {
	if err := h.queue.Enqueue(id); err != nil {
		slog.Warn("generation not queued", "id", id, "error", err)
	}
}
