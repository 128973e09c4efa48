package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/middleware"
	"siaga-bencana/internal/service/resource"
)

type ResourceHandler struct {
	resourceService resource.Service
	validate        *Validator
}

func NewResourceHandler(resourceService resource.Service, validate *Validator) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService, validate: validate}
}

func (h *ResourceHandler) List(c *fiber.Ctx) error {
	resources, err := h.resourceService.GetAll(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(resources)
}

func (h *ResourceHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	res, err := h.resourceService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, resource.ErrResourceNotFound) {
			return middleware.NotFound("Resource not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Check(input); err != nil {
		return err
	}

	res, err := h.resourceService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res)
}

func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	var input domain.UpdateResourceInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Check(input); err != nil {
		return err
	}

	res, err := h.resourceService.Update(c.Context(), id, input)
	if err != nil {
		if errors.Is(err, resource.ErrResourceNotFound) {
			return middleware.NotFound("Resource not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res)
}

func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid resource ID")
	}

	if err := h.resourceService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, resource.ErrResourceNotFound) {
			return middleware.NotFound("Resource not found")
		}
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}
