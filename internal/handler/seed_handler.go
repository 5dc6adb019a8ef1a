package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/skolara/skolara-api/internal/service"
	"github.com/skolara/skolara-api/internal/utils"
)

// SeedHandler exposes the development-only demo seeding endpoint.
type SeedHandler struct {
	service service.SeedService
	logger  zerolog.Logger
}

// NewSeedHandler builds a seed handler instance.
func NewSeedHandler(service service.SeedService, logger zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		service: service,
		logger:  logger.With().Str("component", "seed_handler").Logger(),
	}
}

// Register attaches the routes to the provided router group.
func (h *SeedHandler) Register(router fiber.Router) {
	router.Post("/demo", h.seedDemo)
}

func (h *SeedHandler) seedDemo(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")

	student, err := h.service.SeedDemo(c.UserContext(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedDisabled):
			return utils.SendError(c, fiber.StatusNotFound, "not found")
		case errors.Is(err, service.ErrSeedUnauthorized):
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid seed token")
		default:
			h.logger.Error().Err(err).Msg("seeding failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "demo catalog seeded", student)
}
