package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skolara/skolara-api/internal/service"
	"github.com/skolara/skolara-api/internal/utils"
)

// OverviewHandler serves the categorized assignment dashboard views.
type OverviewHandler struct {
	overview service.OverviewService
	stats    service.StatsService
	logger   zerolog.Logger
}

// NewOverviewHandler builds an overview handler instance.
func NewOverviewHandler(overview service.OverviewService, stats service.StatsService, logger zerolog.Logger) *OverviewHandler {
	return &OverviewHandler{
		overview: overview,
		stats:    stats,
		logger:   logger.With().Str("component", "overview_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *OverviewHandler) Register(router fiber.Router) {
	router.Get("/assignments/overview", h.get)
	router.Get("/students/me/subject-stats", h.subjectStats)
}

func (h *OverviewHandler) get(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	studentID, err := parseQueryUint(c, "student_id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	scope := service.OverviewScope{
		StudentID:    studentID,
		MainCategory: c.Query("main_category"),
	}

	overview, err := h.overview.Overview(c.UserContext(), actor, scope)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "overview retrieved", overview)
}

func (h *OverviewHandler) subjectStats(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	stats, err := h.stats.SubjectStats(c.UserContext(), actor.ID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "subject stats retrieved", stats)
}

func (h *OverviewHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "student profile not found")
	case errors.Is(err, service.ErrStudentScopeRequired):
		return utils.SendError(c, fiber.StatusBadRequest, "student_id query parameter is required")
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
