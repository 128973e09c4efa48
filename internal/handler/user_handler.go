package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/middleware"
	"siaga-bencana/internal/service/user"
)

type UserHandler struct {
	userService user.Service
	validate    *Validator
}

func NewUserHandler(userService user.Service, validate *Validator) *UserHandler {
	return &UserHandler{userService: userService, validate: validate}
}

// GetProfile handles GET /users/me.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	return c.Status(fiber.StatusOK).JSON(currentUser)
}

// UpdateProfile handles PUT /users/me.
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.UpdateUserInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Check(input); err != nil {
		return err
	}

	updated, err := h.userService.UpdateProfile(c.Context(), userID, input)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

// DeleteAccount handles DELETE /users/me.
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.userService.DeleteAccount(c.Context(), userID); err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return middleware.NotFound("User not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

// ListVolunteers handles GET /users/volunteers.
func (h *UserHandler) ListVolunteers(c *fiber.Ctx) error {
	volunteers, err := h.userService.ListVolunteers(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(volunteers)
}
