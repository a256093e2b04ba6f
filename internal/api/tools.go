package api

import (
	"context"
	"errors"
	"slices"

	"github.com/Egham-7/models-helper/internal/models"
	"github.com/Egham-7/models-helper/internal/services/comparison"
	"github.com/Egham-7/models-helper/internal/utils"

	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/mark3labs/mcp-go/mcp"
)

const jsonIndent = "  "

const noValidModelsMessage = "No valid models specified"

// ListAvailableModels returns the catalog ids, or full descriptors with publishers when include_metadata is set
func (h *MCPHandler) ListAvailableModels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalog := h.catalog.GetModels(ctx)

	if req.GetBool("include_metadata", false) {
		return jsonResult(models.ListModelsMetadataResponse{
			Models:     catalog,
			Count:      len(catalog),
			Publishers: Publishers(catalog),
		}, false)
	}

	return jsonResult(models.ListModelsResponse{
		ModelIDs: models.ModelIDs(catalog),
		Count:    len(catalog),
	}, false)
}

// CompareModels sends the prompt to every requested model that exists in the catalog
func (h *MCPHandler) CompareModels(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompt, err := req.RequireString("prompt")
	if err != nil {
		return mcp.NewToolResultError(models.NewValidationError("prompt is required", err).Error()), nil
	}

	requested := req.GetStringSlice("models", h.defaultModels)
	catalog := h.catalog.GetModels(ctx)

	valid := FilterKnown(requested, catalog)
	if len(valid) == 0 {
		fiberlog.Infof("[MCP] compare_models: none of %v are in the catalog", requested)
		return jsonResult(models.CompareModelsError{
			Error:           noValidModelsMessage,
			AvailableModels: models.ModelIDs(catalog),
		}, false)
	}

	result, err := h.comparer.Compare(ctx, prompt, valid)
	if errors.Is(err, models.ErrMissingCredential) {
		return jsonResult(models.CompareModelsError{
			Error:          models.ErrMissingCredential.Message,
			ModelsCompared: valid,
		}, true)
	}
	if err != nil {
		fiberlog.Errorf("[MCP] compare_models failed: %v", err)
		return mcp.NewToolResultError(models.NewInternalError("comparison failed", err).Error()), nil
	}

	return jsonResult(models.CompareModelsResponse{
		Results: result,
		Summary: models.ComparisonSummary{
			ModelsCompared: result.Models(),
			Prompt:         prompt,
		},
	}, false)
}

// FilterKnown keeps the requested ids present in the catalog, in request order and without repeats
func FilterKnown(requested []string, catalog []models.ModelDescriptor) []string {
	known := make(map[string]struct{}, len(catalog))
	for _, m := range catalog {
		known[m.ID] = struct{}{}
	}

	valid := make([]string, 0, len(requested))
	for _, id := range comparison.UniqueIDs(requested) {
		if _, ok := known[id]; ok {
			valid = append(valid, id)
		}
	}
	return valid
}

// Publishers returns the distinct publishers in the catalog, sorted
func Publishers(catalog []models.ModelDescriptor) []string {
	publishers := make([]string, 0, len(catalog))
	for _, m := range catalog {
		publishers = append(publishers, m.Publisher)
	}
	slices.Sort(publishers)
	return slices.Compact(publishers)
}

func jsonResult(payload any, isError bool) (*mcp.CallToolResult, error) {
	text, err := utils.EncodeJSON(payload, jsonIndent)
	if err != nil {
		return nil, models.NewInternalError("failed to encode tool result", err)
	}

	result := mcp.NewToolResultText(string(text))
	result.IsError = isError
	return result, nil
}
