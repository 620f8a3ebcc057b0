// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"deckgen/internal/models"
	"deckgen/internal/theme"
)

// PresentationStore handles all presentation-related database operations,
// including the status transitions of the generation lifecycle.
type PresentationStore struct {
	db *sql.DB
}

// NewPresentationStore creates a new PresentationStore with the given database connection.
func NewPresentationStore(db *sql.DB) *PresentationStore {
	return &PresentationStore{db: db}
}

const presentationColumns = `id, user_id, topic, description, num_slides, theme, status, created_at, updated_at`

func scanPresentation(row interface{ Scan(...any) error }) (*models.Presentation, error) {
	p := &models.Presentation{}
	var themeJSON []byte
	err := row.Scan(
		&p.ID, &p.UserID, &p.Topic, &p.Description, &p.NumSlides,
		&themeJSON, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(themeJSON, &p.Theme); err != nil {
		return nil, fmt.Errorf("decode theme: %w", err)
	}
	return p, nil
}

// Create inserts a new presentation in the pending state.
func (s *PresentationStore) Create(userID uuid.UUID, topic, description string, numSlides int, th theme.Theme) (*models.Presentation, error) {
	themeJSON, err := json.Marshal(th)
	if err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}

	p, err := scanPresentation(s.db.QueryRow(`
		INSERT INTO presentations (user_id, topic, description, num_slides, theme)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+presentationColumns+`
	`, userID, topic, description, numSlides, themeJSON))
	if err != nil {
		return nil, fmt.Errorf("create presentation: %w", err)
	}
	return p, nil
}

// FindByID retrieves a presentation by its UUID. Returns nil if not found.
func (s *PresentationStore) FindByID(id uuid.UUID) (*models.Presentation, error) {
	p, err := scanPresentation(s.db.QueryRow(`
		SELECT `+presentationColumns+` FROM presentations WHERE id = $1
	`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find presentation by id: %w", err)
	}
	return p, nil
}

// ListByUser returns all presentations owned by the user, newest first.
func (s *PresentationStore) ListByUser(userID uuid.UUID) ([]models.Presentation, error) {
	rows, err := s.db.Query(`
		SELECT `+presentationColumns+` FROM presentations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list presentations: %w", err)
	}
	defer rows.Close()

	var items []models.Presentation
	for rows.Next() {
		p, err := scanPresentation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan presentation: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// Update persists edited request fields and returns the updated row.
// Status handling belongs to the callers; use ResetPending when the edit
// invalidates previously generated slides.
func (s *PresentationStore) Update(id uuid.UUID, topic, description string, numSlides int, th theme.Theme) (*models.Presentation, error) {
	themeJSON, err := json.Marshal(th)
	if err != nil {
		return nil, fmt.Errorf("encode theme: %w", err)
	}

	p, err := scanPresentation(s.db.QueryRow(`
		UPDATE presentations
		SET topic = $1, description = $2, num_slides = $3, theme = $4, updated_at = NOW()
		WHERE id = $5
		RETURNING `+presentationColumns+`
	`, topic, description, numSlides, themeJSON, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update presentation: %w", err)
	}
	return p, nil
}

// TryStart atomically claims a pending presentation for generation. It
// reports false when the presentation is not pending, which makes the
// transition the serialization point between competing generation attempts.
func (s *PresentationStore) TryStart(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`
		UPDATE presentations SET status = 'in_progress', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`, id)
	if err != nil {
		return false, fmt.Errorf("start generation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("start generation: %w", err)
	}
	return n == 1, nil
}

// MarkCompleted moves an in-progress presentation to completed.
func (s *PresentationStore) MarkCompleted(id uuid.UUID) error {
	return s.finish(id, models.StatusCompleted)
}

// MarkFailed moves an in-progress presentation to failed.
func (s *PresentationStore) MarkFailed(id uuid.UUID) error {
	return s.finish(id, models.StatusFailed)
}

func (s *PresentationStore) finish(id uuid.UUID, status models.Status) error {
	res, err := s.db.Exec(`
		UPDATE presentations SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'in_progress'
	`, status, id)
	if err != nil {
		return fmt.Errorf("mark %s: %w", status, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark %s: %w", status, err)
	}
	if n == 0 {
		return fmt.Errorf("mark %s: presentation %s is not in progress", status, id)
	}
	return nil
}

// ResetPending returns a presentation to the pending state after a
// content-affecting edit, so the next generation pass rebuilds the slides.
func (s *PresentationStore) ResetPending(id uuid.UUID) error {
	_, err := s.db.Exec(`
		UPDATE presentations SET status = 'pending', updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("reset pending: %w", err)
	}
	return nil
}

// Delete removes a presentation by ID. Slides cascade.
func (s *PresentationStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM presentations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete presentation: %w", err)
	}
	return nil
}
