package api

import (
	"context"

	"github.com/Egham-7/models-helper/internal/config"
	"github.com/Egham-7/models-helper/internal/models"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCP operation names
const (
	AvailableModelsURI    = "models://available"
	ListModelsTool        = "list_available_models"
	CompareModelsTool     = "compare_models"
	CompareModelsPromptID = "compare_models_prompt"
)

// ModelSource yields the current model catalog. It never fails.
type ModelSource interface {
	GetModels(ctx context.Context) []models.ModelDescriptor
}

// Comparer sends one prompt to several models
type Comparer interface {
	Compare(ctx context.Context, prompt string, modelIDs []string) (*models.ComparisonResult, error)
}

// MCPHandler implements the resource, tools and prompt exposed to MCP clients
type MCPHandler struct {
	catalog       ModelSource
	comparer      Comparer
	defaultModels []string
}

// NewMCPHandler creates the MCP handler. defaultModels is used by compare_models
// when the caller does not pass a model list.
func NewMCPHandler(catalog ModelSource, comparer Comparer, defaultModels []string) *MCPHandler {
	return &MCPHandler{
		catalog:       catalog,
		comparer:      comparer,
		defaultModels: defaultModels,
	}
}

// NewMCPServer builds an MCP server with every operation registered on h
func NewMCPServer(cfg *config.Config, h *MCPHandler) *server.MCPServer {
	s := server.NewMCPServer(
		cfg.Server.Name,
		cfg.Server.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)

	s.AddResource(
		mcp.NewResource(
			AvailableModelsURI,
			"Available Models",
			mcp.WithResourceDescription("List available language models"),
			mcp.WithMIMEType("text/markdown"),
		),
		h.AvailableModels,
	)

	s.AddTool(
		mcp.NewTool(
			ListModelsTool,
			mcp.WithDescription("Get a list of available language models"),
			mcp.WithBoolean("include_metadata",
				mcp.DefaultBool(false),
				mcp.Description("Whether to include additional model metadata"),
			),
		),
		h.ListAvailableModels,
	)

	s.AddTool(
		mcp.NewTool(
			CompareModelsTool,
			mcp.WithDescription("Compare responses from different models for the same prompt"),
			mcp.WithString("prompt",
				mcp.Required(),
				mcp.Description("The prompt to send to all models"),
			),
			mcp.WithArray("models",
				mcp.Items(map[string]any{"type": "string"}),
				mcp.Description("List of model IDs to compare"),
			),
		),
		h.CompareModels,
	)

	s.AddPrompt(
		mcp.NewPrompt(
			CompareModelsPromptID,
			mcp.WithPromptDescription("Create a comparison prompt with selected models"),
			mcp.WithArgument("prompt",
				mcp.RequiredArgument(),
				mcp.ArgumentDescription("The prompt to compare"),
			),
			mcp.WithArgument("models",
				mcp.ArgumentDescription("Comma-separated list of models to compare"),
			),
		),
		h.CompareModelsPrompt,
	)

	return s
}
