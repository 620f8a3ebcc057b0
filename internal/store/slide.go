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
)

// SlideStore handles all slide-related database operations. Slides are
// always written as a complete set: a generation pass replaces whatever
// the previous pass produced.
type SlideStore struct {
	db *sql.DB
}

// NewSlideStore creates a new SlideStore with the given database connection.
func NewSlideStore(db *sql.DB) *SlideStore {
	return &SlideStore{db: db}
}

// ListByPresentation returns the presentation's slides in deck order.
func (s *SlideStore) ListByPresentation(presentationID uuid.UUID) ([]models.Slide, error) {
	rows, err := s.db.Query(`
		SELECT id, presentation_id, layout_id, layout_name, slide_index, content
		FROM slides
		WHERE presentation_id = $1
		ORDER BY slide_index ASC
	`, presentationID)
	if err != nil {
		return nil, fmt.Errorf("list slides: %w", err)
	}
	defer rows.Close()

	var slides []models.Slide
	for rows.Next() {
		var sl models.Slide
		var contentJSON []byte
		if err := rows.Scan(
			&sl.ID, &sl.PresentationID, &sl.LayoutID, &sl.LayoutName,
			&sl.Index, &contentJSON,
		); err != nil {
			return nil, fmt.Errorf("scan slide: %w", err)
		}
		if err := json.Unmarshal(contentJSON, &sl.Content); err != nil {
			return nil, fmt.Errorf("decode slide content: %w", err)
		}
		slides = append(slides, sl)
	}
	return slides, rows.Err()
}

// ReplaceAll deletes the presentation's slides and inserts the given set in
// a single transaction, so readers never observe a half-written deck.
func (s *SlideStore) ReplaceAll(presentationID uuid.UUID, slides []models.Slide) ([]models.Slide, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("replace slides: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM slides WHERE presentation_id = $1`, presentationID); err != nil {
		return nil, fmt.Errorf("delete old slides: %w", err)
	}

	out := make([]models.Slide, 0, len(slides))
	for _, sl := range slides {
		contentJSON, err := json.Marshal(sl.Content)
		if err != nil {
			return nil, fmt.Errorf("encode slide content: %w", err)
		}
		sl.PresentationID = presentationID
		if err := tx.QueryRow(`
			INSERT INTO slides (presentation_id, layout_id, layout_name, slide_index, content)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, presentationID, sl.LayoutID, sl.LayoutName, sl.Index, contentJSON).Scan(&sl.ID); err != nil {
			return nil, fmt.Errorf("insert slide %d: %w", sl.Index, err)
		}
		out = append(out, sl)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replace slides: %w", err)
	}
	return out, nil
}

// DeleteByPresentation removes all slides of a presentation.
func (s *SlideStore) DeleteByPresentation(presentationID uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM slides WHERE presentation_id = $1`, presentationID)
	if err != nil {
		return fmt.Errorf("delete slides: %w", err)
	}
	return nil
}
