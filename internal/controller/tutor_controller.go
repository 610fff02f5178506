package controller

import (
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITutorController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Ask(ctx *fiber.Ctx) error
	UploadImage(ctx *fiber.Ctx) error
}

type tutorController struct {
	service service.ITutorService
}

func NewTutorController(service service.ITutorService) ITutorController {
	return &tutorController{service: service}
}

func (c *tutorController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/tutor", sessionMiddleware)
	h.Post("/ask", c.Ask)
	h.Post("/images", c.UploadImage)
}

func (c *tutorController) Ask(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}

	var req dto.AskRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Ask(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Reply generated", res))
}

func (c *tutorController) UploadImage(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		return apperror.Validation("image file is required", map[string]string{"image": "required"})
	}

	res, err := c.service.UploadImage(ctx.UserContext(), user, file)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Image uploaded", res))
}
