package api

import (
	"time"

	"github.com/Egham-7/models-helper/internal/config"
	"github.com/Egham-7/models-helper/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CatalogStatusSource reports on the model cache
type CatalogStatusSource interface {
	Status() models.CatalogStatus
}

// HealthHandler handles health check requests for the http transport
type HealthHandler struct {
	cfg     *config.Config
	catalog CatalogStatusSource
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(cfg *config.Config, catalog CatalogStatusSource) *HealthHandler {
	return &HealthHandler{
		cfg:     cfg,
		catalog: catalog,
	}
}

// HealthCheck returns the health of the catalog cache and the comparison credential.
// A missing credential only disables compare_models, so it reports degraded with 200.
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	status := h.catalog.Status()

	comparisonStatus := "configured"
	overallStatus := "healthy"
	if !h.cfg.HasCredential() {
		comparisonStatus = "missing_credential"
		overallStatus = "degraded"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    overallStatus,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks": fiber.Map{
			"catalog":    catalogState(status),
			"comparison": comparisonStatus,
		},
		"catalog": status,
	})
}

func catalogState(status models.CatalogStatus) string {
	switch {
	case status.FetchedAt.IsZero():
		return "empty"
	case status.Fresh:
		return "fresh"
	default:
		return "stale"
	}
}
