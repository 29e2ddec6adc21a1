package handler

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"casillero/internal/repository"
	"casillero/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Keep handlers minimal and free of business logic.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.DecisionService) {
	// Health endpoints: /health checks DB connectivity, /healthz is a bare
	// liveness probe.
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	// Registry query endpoints.
	app.Get("/descargar/:ndetalle", DownloadDecision(svc))
	app.Get("/filters", ListFilters(svc))
	app.Get("/search", SearchDecisions(svc))
}

// HealthCheck reports whether the database dependency is reachable.
//
// @Summary Health check
// @Description Pings the database and reports service health.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a minimal probe that always returns 200 while the process
// is serving.
//
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// DownloadDecision resolves a decision identifier to a temporary download URL
// for its stored document.
//
// @Summary Resolve a decision download URL
// @Description Looks up the decision by its detail identifier and returns a time-limited signed URL for downloading the stored document.
// @Tags decisions
// @Produce json
// @Param ndetalle path string true "Decision detail identifier"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /descargar/{ndetalle} [get]
func DownloadDecision(svc service.DecisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ndetalle := c.Params("ndetalle")
		url, err := svc.ResolveDownload(c.UserContext(), ndetalle)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrNDetalleRequired) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fiber.Map{"url": url})
	}
}

// ListFilters returns the catalog of distinct values usable as search filters.
//
// @Summary List filter values
// @Description Returns the distinct values of codigo_organo, codigo_recurso, especialidad_expe, organo_detalle and nombre_juez, each sorted ascending.
// @Tags decisions
// @Produce json
// @Success 200 {object} map[string][]string
// @Failure 500 {object} errorPayload
// @Router /filters [get]
func ListFilters(svc service.DecisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fv, err := svc.FilterValues(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(fv)
	}
}

// SearchDecisions runs a filtered search over the registry and returns the
// total match count plus one page of results.
//
// @Summary Search decisions
// @Description Searches decision records by any combination of the optional filters. An omitted or empty filter is not applied. Results map each ndetalle to its storage path.
// @Tags decisions
// @Produce json
// @Param codigo_organo query string false "Organ code"
// @Param codigo_recurso query string false "Appeal code"
// @Param especialidad_expe query string false "Specialty"
// @Param organo_detalle query string false "Organ detail"
// @Param nombre_juez query string false "Judge name"
// @Param limit query int false "Page size" default(10)
// @Param offset query int false "Page offset" default(0)
// @Success 200 {object} service.SearchResult
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /search [get]
func SearchDecisions(svc service.DecisionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limitStr := c.Query("limit", "10")
		offsetStr := c.Query("offset", "0")
		limit, err := strconv.Atoi(limitStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(offsetStr)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		// An empty query value means the filter is absent.
		f := repository.SearchFilters{
			OrganCode:   c.Query("codigo_organo"),
			AppealCode:  c.Query("codigo_recurso"),
			Specialty:   c.Query("especialidad_expe"),
			OrganDetail: c.Query("organo_detalle"),
			JudgeName:   c.Query("nombre_juez"),
		}

		res, err := svc.Search(c.UserContext(), f, limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}
