package api

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

const comparePromptHeader = "Please compare how different AI models respond to this prompt:\n\nPrompt: %s\n\n"

// CompareModelsPrompt builds a single user message asking the assistant to run a comparison.
// The models argument is passed through as given.
func (h *MCPHandler) CompareModelsPrompt(_ context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	prompt, ok := req.Params.Arguments["prompt"]
	if !ok {
		return nil, fmt.Errorf("missing required argument: prompt")
	}

	return mcp.NewGetPromptResult(
		"Create a comparison prompt with selected models",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(BuildComparisonPrompt(prompt, req.Params.Arguments["models"]))),
		},
	), nil
}

// BuildComparisonPrompt renders the message text, naming modelList when it is not empty
func BuildComparisonPrompt(prompt, modelList string) string {
	header := fmt.Sprintf(comparePromptHeader, prompt)
	if modelList != "" {
		return header + "Please use these specific models: " + modelList
	}
	return header + "Please use the default models available."
}
