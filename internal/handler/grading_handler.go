package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skolara/skolara-api/internal/dto"
	"github.com/skolara/skolara-api/internal/service"
	"github.com/skolara/skolara-api/internal/utils"
)

// GradingHandler manages teacher grading endpoints.
type GradingHandler struct {
	service service.GradingService
	logger  zerolog.Logger
}

// NewGradingHandler builds a grading handler instance.
func NewGradingHandler(service service.GradingService, logger zerolog.Logger) *GradingHandler {
	return &GradingHandler{
		service: service,
		logger:  logger.With().Str("component", "grading_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *GradingHandler) Register(router fiber.Router) {
	router.Post("/:id/grade", h.grade)
}

func (h *GradingHandler) grade(c *fiber.Ctx) error {
	actor, err := actorFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	}

	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.GradeSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Grade(c.UserContext(), id, payload, actor)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "submission graded", result)
}

func (h *GradingHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	var outOfRange *service.PointsOutOfRangeError
	var unknownQuestion *service.UnknownQuestionError

	switch {
	case errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "submission not found")
	case errors.As(err, &outOfRange):
		return utils.SendError(c, fiber.StatusBadRequest, outOfRange.Error())
	case errors.As(err, &unknownQuestion):
		return utils.SendError(c, fiber.StatusBadRequest, unknownQuestion.Error())
	case errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, validationErrors.Error())
	default:
		h.logger.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
