package api

import (
	"context"

	"github.com/Egham-7/models-helper/internal/models"
	"github.com/Egham-7/models-helper/internal/utils"

	"github.com/mark3labs/mcp-go/mcp"
)

// AvailableModels renders the catalog as markdown for the models://available resource
func (h *MCPHandler) AvailableModels(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	if uri == "" {
		uri = AvailableModelsURI
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/markdown",
			Text:     FormatModelsMarkdown(h.catalog.GetModels(ctx)),
		},
	}, nil
}

// FormatModelsMarkdown renders one section per model under a top-level heading
func FormatModelsMarkdown(descriptors []models.ModelDescriptor) string {
	buf := utils.Get()
	defer utils.Put(buf)

	buf.WriteString("# Available Models\n")
	for _, m := range descriptors {
		buf.WriteString("\n## ")
		buf.WriteString(m.DisplayName)
		buf.WriteString(" (`")
		buf.WriteString(m.ID)
		buf.WriteString("`)\n- Publisher: ")
		buf.WriteString(m.Publisher)
		buf.WriteString("\n- Context Window: ")
		buf.WriteString(utils.FormatThousands(m.ContextWindow))
		buf.WriteString(" tokens\n- Summary: ")
		buf.WriteString(m.Summary)
		buf.WriteString("\n")
	}

	return buf.String()
}
