package catalog

import "github.com/Egham-7/models-helper/internal/models"

// fallbackModels is served whenever the catalog API cannot be reached or answers
// with something unusable. Order is significant: it is the order clients see.
var fallbackModels = []models.ModelDescriptor{
	{ID: "gpt-4o", DisplayName: "GPT-4o", Publisher: "OpenAI", Summary: "OpenAI's most advanced multimodal model", ContextWindow: 128000},
	{ID: "gpt-4o-mini", DisplayName: "GPT-4o-mini", Publisher: "OpenAI", Summary: "Smaller, efficient version of GPT-4o", ContextWindow: 128000},
	{ID: "Phi-3.5-MoE-instruct", DisplayName: "Phi-3.5-MOE Instruct", Publisher: "Microsoft", Summary: "A mixture of experts model from Microsoft", ContextWindow: 131072},
	{ID: "Phi-3-mini-128k-instruct", DisplayName: "Phi-3-Mini Instruct 128k", Publisher: "Microsoft", Summary: "Small model with large context window", ContextWindow: 131072},
	{ID: "Llama-3.3-70B-Instruct", DisplayName: "Meta Llama 3.3 70B Instruct", Publisher: "Meta", Summary: "Advanced reasoning and instruction following", ContextWindow: 128000},
	{ID: "Meta-Llama-3-8B-Instruct", DisplayName: "Meta Llama 3 8B Instruct", Publisher: "Meta", Summary: "Balanced performance and efficiency", ContextWindow: 8192},
	{ID: "Mistral-large", DisplayName: "Mistral Large", Publisher: "Mistral AI", Summary: "Mistral's flagship model for complex reasoning", ContextWindow: 32768},
	{ID: "Mistral-small", DisplayName: "Mistral Small", Publisher: "Mistral AI", Summary: "Efficient model for low-latency use cases", ContextWindow: 32768},
}

// FallbackModels returns a copy of the hardcoded model list
func FallbackModels() []models.ModelDescriptor {
	out := make([]models.ModelDescriptor, len(fallbackModels))
	copy(out, fallbackModels)
	return out
}
