package handler

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/service"
	"github.com/skolara/skolara-api/internal/utils"
)

// ActivityHandler exposes the grading audit trail.
type ActivityHandler struct {
	service   service.ActivityService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewActivityHandler builds an activity handler instance.
func NewActivityHandler(service service.ActivityService, validate *validator.Validate, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service:   service,
		validator: validate,
		logger:    logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *ActivityHandler) Register(router fiber.Router) {
	router.Get("", h.list)
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	var req dto.ActivityListRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid query parameters")
	}

	if err := h.validator.Struct(req); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	activities, err := h.service.List(c.UserContext(), req)
	if err != nil {
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}

	return utils.SendSuccess(c, "activity retrieved", activities)
}
