package catalog

import (
	"errors"

	"catalog-mirror/core/logger"
	"catalog-mirror/core/mirror"
	"catalog-mirror/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the catalog mirror.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleFamilies)
	group.Post("/:family/sync", h.HandleSync)
	group.Post("/:family/register", h.HandleRegister)
	group.Get("/:family/:name", h.HandleLookup)
}

// registerRequest is the body of a registration hook call.
type registerRequest struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Platform string `json:"platform"`
}

// HandleFamilies lists the mirrored families.
// GET /catalog
func (h *Handler) HandleFamilies(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"families": h.service.Families()})
}

// HandleSync runs a reconciliation pass.
// POST /catalog/:family/sync?mode=full|incremental
func (h *Handler) HandleSync(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	family := c.Params("family")
	mode := c.Query("mode", ModeFull)

	l.Info("Triggering sync", zap.String("family", family), zap.String("mode", mode))
	result, err := h.service.Sync(c.Context(), family, mode)
	if err != nil {
		l.Error("Sync failed", zap.String("family", family), zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(result)
}

// HandleRegister merges a single release into the mirror.
// POST /catalog/:family/register
func (h *Handler) HandleRegister(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	family := c.Params("family")

	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record := reconcile.VersionRecord{Name: req.Name, Version: req.Version, Platform: req.Platform}
	changed, err := h.service.Register(c.Context(), family, record)
	if err != nil {
		l.Error("Registration failed", zap.String("family", family), zap.Error(err))
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed})
}

// HandleLookup returns one mirror row.
// GET /catalog/:family/:name
func (h *Handler) HandleLookup(c *fiber.Ctx) error {
	family, name := c.Params("family"), c.Params("name")

	versions, err := h.service.Lookup(c.Context(), family, name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"name": name, "versions": versions})
}

func writeError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, reconcile.ErrUnknownFamily), errors.Is(err, mirror.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, reconcile.ErrIncrementalUnsupported):
		status = fiber.StatusConflict
	case errors.Is(err, ErrInvalidMode), errors.Is(err, reconcile.ErrInvalidRecord):
		status = fiber.StatusBadRequest
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
