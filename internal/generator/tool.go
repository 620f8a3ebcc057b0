// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import "deckgen/internal/ai"

// ToolName is the function the model is forced to call. The whole deck
// arrives as this single structured call, never as free text.
const ToolName = "generate_pptx"

// DeckTool returns the tool definition sent to every provider. The schema
// closes every object (additionalProperties false) so models cannot invent
// fields the parser would have to guess about.
func DeckTool() ai.Tool {
	return ai.Tool{
		Name:        ToolName,
		Description: "Generate the complete slide content for a PowerPoint presentation.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"slides": map[string]any{
					"type":        "array",
					"description": "The slides of the presentation, in order.",
					"items": map[string]any{
						"type": "object",
						"properties": map[string]any{
							"layout_id": map[string]any{
								"type":    "integer",
								"minimum": 0,
								"maximum": 10,
							},
							"layout_name": map[string]any{
								"type": "string",
							},
							"content": map[string]any{
								"type": "array",
								"items": map[string]any{
									"type": "object",
									"properties": map[string]any{
										"name": map[string]any{
											"type": "string",
										},
										"value": map[string]any{
											"anyOf": []any{
												map[string]any{"type": "string"},
												map[string]any{
													"type":  "array",
													"items": map[string]any{"type": "string"},
												},
											},
										},
									},
									"required":             []string{"name", "value"},
									"additionalProperties": false,
								},
							},
						},
						"required":             []string{"layout_id", "layout_name", "content"},
						"additionalProperties": false,
					},
				},
			},
			"required":             []string{"slides"},
			"additionalProperties": false,
		},
	}
}
