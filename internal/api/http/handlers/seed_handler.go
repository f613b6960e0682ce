package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/service"
)

// SeedHandler triggers database seeding in non-production environments.
type SeedHandler struct {
	seed *service.SeedService
}

// NewSeedHandler constructs handler.
func NewSeedHandler(seedService *service.SeedService) *SeedHandler {
	return &SeedHandler{seed: seedService}
}

// Run handles POST /seed.
func (h *SeedHandler) Run(c *fiber.Ctx) error {
	msg, err := h.seed.Run(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": msg})
}
