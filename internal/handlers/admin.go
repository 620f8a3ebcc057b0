// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"deckgen/internal/ai"
)

// Admin groups operator-only handlers: switching the active AI provider.
type Admin struct {
	registry *ai.Registry
}

// NewAdmin creates a new Admin handler group.
func NewAdmin(registry *ai.Registry) *Admin {
	return &Admin{registry: registry}
}

type providerStatusResponse struct {
	Active    string   `json:"active"`
	Available []string `json:"available"`
}

// ProviderStatus reports the active AI provider and the configured set.
func (a *Admin) ProviderStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providerStatusResponse{
		Active:    a.registry.ActiveName(),
		Available: a.registry.Available(),
	})
}

type setProviderRequest struct {
	Provider string `json:"provider"`
}

// SetProvider switches the active AI provider for subsequent generations.
func (a *Admin) SetProvider(w http.ResponseWriter, r *http.Request) {
	var req setProviderRequest
	if !readJSON(w, r, &req) {
		return
	}

	if err := a.registry.SetActive(req.Provider); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("active ai provider switched", "provider", req.Provider)
	writeJSON(w, http.StatusOK, providerStatusResponse{
		Active:    a.registry.ActiveName(),
		Available: a.registry.Available(),
	})
}
