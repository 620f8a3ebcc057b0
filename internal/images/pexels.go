// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package images resolves picture placeholders against the Pexels search
// API and fetches image bytes for embedding into rendered decks.
package images

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client is a minimal Pexels photo search client.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Pexels client. baseURL overrides the production
// endpoint and is meant for tests; pass "" for the real API.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.pexels.com"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// pexelsPhoto is the subset of the Pexels photo object we consume.
type pexelsPhoto struct {
	Src struct {
		Original string `json:"original"`
	} `json:"src"`
}

type pexelsSearchResponse struct {
	Photos []pexelsPhoto `json:"photos"`
}

// SearchBestMatch queries Pexels for the single best photo matching the
// query and returns its full-resolution URL. Returns "" with a nil error
// when the search succeeds but finds nothing.
func (c *Client) SearchBestMatch(ctx context.Context, query string) (string, error) {
	u := fmt.Sprintf("%s/v1/search?query=%s&per_page=1", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", fmt.Errorf("pexels request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("pexels http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("pexels read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result pexelsSearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("pexels unmarshal: %w", err)
	}

	if len(result.Photos) == 0 {
		return "", nil
	}
	return result.Photos[0].Src.Original, nil
}

// Fetch downloads an image and returns its bytes. Used by the assembler to
// embed resolved pictures into the deck.
func (c *Client) Fetch(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("image request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("image http: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image fetch error (status %d)", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("image read body: %w", err)
	}
	return data, nil
}
