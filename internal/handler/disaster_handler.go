package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"siaga-bencana/internal/domain"
	"siaga-bencana/internal/middleware"
	"siaga-bencana/internal/service/disaster"
	"siaga-bencana/internal/service/media"
)

type DisasterHandler struct {
	disasterService disaster.Service
	mediaService    media.Service
	validate        *Validator
}

func NewDisasterHandler(disasterService disaster.Service, mediaService media.Service, validate *Validator) *DisasterHandler {
	return &DisasterHandler{
		disasterService: disasterService,
		mediaService:    mediaService,
		validate:        validate,
	}
}

// List handles GET /disasters.
func (h *DisasterHandler) List(c *fiber.Ctx) error {
	reports, err := h.disasterService.GetAll(c.Context())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(reports)
}

// Get handles GET /disasters/:id.
func (h *DisasterHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid disaster ID")
	}

	report, err := h.disasterService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, disaster.ErrDisasterNotFound) {
			return middleware.NotFound("Disaster report not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

// Create handles POST /disasters. The reporter is always the authenticated
// user; any reportedBy in the body is ignored.
func (h *DisasterHandler) Create(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	var input domain.CreateDisasterInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Check(input); err != nil {
		return err
	}

	report, err := h.disasterService.Create(c.Context(), currentUser, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// UpdateStatus handles PATCH /disasters/:id/status.
func (h *DisasterHandler) UpdateStatus(c *fiber.Ctx) error {
	currentUser := middleware.GetCurrentUser(c)
	if currentUser == nil {
		return middleware.Unauthorized("User not authenticated")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid disaster ID")
	}

	var input domain.UpdateStatusInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if err := h.validate.Check(input); err != nil {
		return err
	}

	report, err := h.disasterService.UpdateStatus(c.Context(), currentUser, id, input)
	if err != nil {
		switch {
		case errors.Is(err, disaster.ErrDisasterNotFound):
			return middleware.NotFound("Disaster report not found")
		case errors.Is(err, disaster.ErrInvalidTransition):
			return middleware.UnprocessableEntity("Status transition not allowed")
		case errors.Is(err, disaster.ErrNotAssigned):
			return middleware.Forbidden("Only the assigned volunteer can resolve this report")
		case errors.Is(err, disaster.ErrVolunteerMismatch):
			return middleware.Forbidden("Volunteer id does not match the authenticated user")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(report)
}

// History handles GET /disasters/:id/history.
func (h *DisasterHandler) History(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid disaster ID")
	}

	entries, err := h.disasterService.History(c.Context(), id)
	if err != nil {
		if errors.Is(err, disaster.ErrDisasterNotFound) {
			return middleware.NotFound("Disaster report not found")
		}
		return err
	}

	return c.Status(fiber.StatusOK).JSON(entries)
}

// UploadImage handles POST /disasters/:id/images.
func (h *DisasterHandler) UploadImage(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid disaster ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.BadRequest("File is required")
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	fileReader, err := file.Open()
	if err != nil {
		return middleware.BadRequest("Failed to read file")
	}
	defer fileReader.Close()

	imageURL, err := h.mediaService.UploadDisasterImage(c.Context(), id, file.Filename, file.Size, mimeType, fileReader)
	if err != nil {
		if errors.Is(err, media.ErrStorageUnavailable) {
			return middleware.NewError(fiber.StatusServiceUnavailable, "Media storage is unavailable")
		}
		if errors.Is(err, media.ErrUnsupportedType) {
			return middleware.BadRequest("Only image uploads are accepted")
		}
		return err
	}

	report, err := h.disasterService.AddImage(c.Context(), id, imageURL)
	if err != nil {
		if errors.Is(err, disaster.ErrDisasterNotFound) {
			return middleware.NotFound("Disaster report not found")
		}
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}
