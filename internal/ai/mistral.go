// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// mistralProvider implements the Provider interface using Mistral's
// chat completions API, which is OpenAI-compatible (including tools).
type mistralProvider struct {
	config ProviderConfig
	client *http.Client
}

// newMistral creates a new Mistral provider.
func newMistral(cfg ProviderConfig) *mistralProvider {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mistral.ai/v1"
	}
	return &mistralProvider{
		config: cfg,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *mistralProvider) Name() string { return "mistral" }

// CallTool sends an OpenAI-wire chat completion request with the single tool
// and tool_choice "any" (Mistral's spelling of "must call a tool"), then
// returns the tool call's argument payload.
func (p *mistralProvider) CallTool(ctx context.Context, systemPrompt, userPrompt string, tool Tool) (json.RawMessage, error) {
	body := chatToolRequest{
		Model:       p.config.Model,
		Temperature: 0,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Tools: []chatTool{
			{Type: "function", Function: chatFunction{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			}},
		},
		ToolChoice: "any",
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("mistral marshal: %w", err)
	}

	url := p.config.BaseURL + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("mistral request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mistral http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("mistral read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mistral API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result chatToolResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("mistral unmarshal: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("mistral: no choices returned")
	}

	calls := result.Choices[0].Message.ToolCalls
	if len(calls) != 1 {
		return nil, fmt.Errorf("mistral: expected exactly one tool call, got %d", len(calls))
	}
	if calls[0].Function.Name != tool.Name {
		return nil, fmt.Errorf("mistral: model called unknown tool %q", calls[0].Function.Name)
	}

	return json.RawMessage(calls[0].Function.Arguments), nil
}

// --- OpenAI-compatible wire types (Mistral speaks the same format) ---

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatFunction struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters"`
}

type chatTool struct {
	Type     string       `json:"type"`
	Function chatFunction `json:"function"`
}

type chatToolRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
	Tools       []chatTool    `json:"tools,omitempty"`
	ToolChoice  string        `json:"tool_choice,omitempty"`
}

type chatFunctionCall struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatToolCall struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function chatFunctionCall `json:"function"`
}

type chatResponseMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []chatToolCall `json:"tool_calls,omitempty"`
}

type chatChoice struct {
	Message chatResponseMessage `json:"message"`
}

type chatToolResponse struct {
	Choices []chatChoice `json:"choices"`
}
