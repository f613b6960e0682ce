package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/user-service/internal/api/dto"
	"github.com/spec-kit/user-service/internal/domain"
	"github.com/spec-kit/user-service/internal/service"
)

// UsersHandler exposes the account lifecycle endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "name, email, password required")
	}

	user, err := h.users.Create(c.Context(), req.Email, req.Name, req.Password, domain.RolesFromStrings(req.Roles))
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": user})
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var query dto.PaginationQuery
	query.Limit = 10
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid pagination query")
	}
	if query.Limit < 0 || query.Offset < 0 {
		return fiber.NewError(http.StatusBadRequest, "limit and offset must be non-negative")
	}

	page, err := h.users.FindAll(c.Context(), query.Limit, query.Offset)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": page})
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.FindByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Update handles PATCH /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Context(), c.Params("id"), service.UpdateUserInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Roles:    domain.RolesFromStrings(req.Roles),
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"data": user})
}

// Deactivate handles DELETE /users/:id. The row is kept; only the active
// flag flips.
func (h *UsersHandler) Deactivate(c *fiber.Ctx) error {
	user, err := h.users.Deactivate(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}
