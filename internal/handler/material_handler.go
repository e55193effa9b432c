package handler

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/cramr/cramr-backend/internal/models"
	"github.com/cramr/cramr-backend/internal/service"
)

const uploadField = "file"

// MaterialHandler serves study materials and the generic upload routes.
type MaterialHandler struct {
	materialService *service.MaterialService
}

func NewMaterialHandler(materialService *service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materialService: materialService}
}

// withUpload opens the multipart file and hands it to fn, closing it after.
func withUpload(c *fiber.Ctx, fn func(service.Upload) error) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return &service.Error{Kind: service.ErrValidation, Msg: "file is required"}
	}
	return openUpload(fh, fn)
}

func openUpload(fh *multipart.FileHeader, fn func(service.Upload) error) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	return fn(service.Upload{
		FileName:    fh.Filename,
		Size:        fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        src,
	})
}

func (h *MaterialHandler) UploadEventMaterial(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	var material *models.StudyMaterial
	err = withUpload(c, func(up service.Upload) error {
		var err error
		material, err = h.materialService.UploadMaterial(c.UserContext(), userID, &eventID, up)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(material, "Material uploaded"))
}

func (h *MaterialHandler) ListEventMaterials(c *fiber.Ctx) error {
	eventID, err := paramID(c, "eventId")
	if err != nil {
		return respondError(c, err)
	}

	materials, err := h.materialService.ListByEvent(c.UserContext(), eventID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(materials, ""))
}

func (h *MaterialHandler) ListUserMaterials(c *fiber.Ctx) error {
	ownerID, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	materials, err := h.materialService.ListByUser(c.UserContext(), ownerID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(materials, ""))
}

func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.materialService.DeleteMaterial(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Material deleted"))
}

func (h *MaterialHandler) UploadProfilePicture(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var uploaded *models.UploadedFile
	err = withUpload(c, func(up service.Upload) error {
		var err error
		uploaded, err = h.materialService.UploadProfilePicture(c.UserContext(), userID, up)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(uploaded, "Profile picture updated"))
}

func (h *MaterialHandler) UploadFile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var uploaded *models.UploadedFile
	err = withUpload(c, func(up service.Upload) error {
		var err error
		uploaded, err = h.materialService.UploadFile(c.UserContext(), userID, up)
		return err
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(uploaded, "File uploaded"))
}
