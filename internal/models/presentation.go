// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the domain entities persisted by the stores:
// presentations, their slides, and user accounts.
package models

import (
	"time"

	"github.com/google/uuid"

	"deckgen/internal/theme"
)

// Status is the lifecycle state of a presentation's content generation.
type Status string

const (
	// StatusPending means generation has not started (or was reset by a
	// content-affecting edit).
	StatusPending Status = "pending"
	// StatusInProgress means a generation attempt owns the presentation.
	// Exactly one attempt can hold this state at a time.
	StatusInProgress Status = "in_progress"
	// StatusCompleted means slides are generated and persisted.
	StatusCompleted Status = "completed"
	// StatusFailed means the last generation attempt errored out.
	StatusFailed Status = "failed"
)

// Terminal reports whether the status is a generation end state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Slide count bounds accepted on create and update.
const (
	MinSlides = 1
	MaxSlides = 20
)

// Presentation is one user-owned deck request together with its generation
// state. Slides live in their own table and are replaced wholesale on every
// successful generation pass.
type Presentation struct {
	ID          uuid.UUID   `json:"id"`
	UserID      uuid.UUID   `json:"user_id"`
	Topic       string      `json:"topic"`
	Description string      `json:"description"`
	NumSlides   int         `json:"num_slides"`
	Theme       theme.Theme `json:"theme"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
