package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/skolara/skolara-api/internal/service"
)

var errNoActor = errors.New("no authenticated actor")

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := c.Params(key)
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + key)
	}
	return uint(parsed), nil
}

func parseQueryUint(c *fiber.Ctx, key string) (*uint, error) {
	value := c.Query(key)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return nil, errors.New("invalid " + key)
	}
	result := uint(parsed)
	return &result, nil
}

// actorFromContext builds the explicit actor context from the identity the
// JWT middleware verified. Services only ever see this value, never the
// request.
func actorFromContext(c *fiber.Ctx) (service.ActivityActor, error) {
	userID, ok := c.Locals("user_id").(uint)
	if !ok {
		return service.ActivityActor{}, errNoActor
	}

	role, _ := c.Locals("user_role").(string)

	return service.ActivityActor{ID: userID, Role: role}, nil
}
