// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIProvider implements the Provider interface using the official
// openai-go SDK (chat completions with function tools).
type openAIProvider struct {
	config ProviderConfig
	client openai.Client
}

// newOpenAI creates a new OpenAI provider.
func newOpenAI(cfg ProviderConfig) *openAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &openAIProvider{
		config: cfg,
		client: openai.NewClient(opts...),
	}
}

func (p *openAIProvider) Name() string { return "openai" }

// CallTool sends a chat completion request offering the single tool and
// returns the arguments of the model's tool invocation. Temperature is
// pinned to zero: the reply must conform to the tool schema, not be creative
// about its shape.
func (p *openAIProvider) CallTool(ctx context.Context, systemPrompt, userPrompt string, tool Tool) (json.RawMessage, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(p.config.Model),
		Temperature: openai.Float(0),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		Tools: []openai.ChatCompletionToolParam{
			{
				Function: openai.FunctionDefinitionParam{
					Name:        tool.Name,
					Description: openai.String(tool.Description),
					Parameters:  openai.FunctionParameters(tool.Parameters),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai: no choices returned")
	}

	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) != 1 {
		return nil, fmt.Errorf("openai: expected exactly one tool call, got %d", len(calls))
	}
	if calls[0].Function.Name != tool.Name {
		return nil, fmt.Errorf("openai: model called unknown tool %q", calls[0].Function.Name)
	}

	return json.RawMessage(calls[0].Function.Arguments), nil
}
