package controller

import (
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	ListChats(ctx *fiber.Ctx) error
	CreateChat(ctx *fiber.Ctx) error
	GetChat(ctx *fiber.Ctx) error
	UpdateChat(ctx *fiber.Ctx) error
	DeleteChat(ctx *fiber.Ctx) error
	AppendMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/chats", sessionMiddleware)
	h.Get("/", c.ListChats)
	h.Post("/", c.CreateChat)
	h.Get("/:id", c.GetChat)
	h.Patch("/:id", c.UpdateChat)
	h.Delete("/:id", c.DeleteChat)
	h.Post("/:id/messages", c.AppendMessage)
}

// chatIdParam treats an unparsable id like an unknown one.
func chatIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, apperror.NotFound("chat not found")
	}
	return id, nil
}

func (c *chatController) ListChats(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}

	var query dto.ListChatsQuery
	if err := serverutils.ParseQuery(ctx, &query); err != nil {
		return err
	}

	res, err := c.service.ListChats(ctx.UserContext(), user, &query)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chats retrieved", res))
}

func (c *chatController) CreateChat(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateChatRequest
	if len(ctx.Body()) > 0 {
		if err := serverutils.ParseBody(ctx, &req); err != nil {
			return err
		}
	}

	res, err := c.service.CreateChat(ctx.UserContext(), user, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Chat created", res))
}

func (c *chatController) GetChat(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}
	id, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetChat(ctx.UserContext(), user, id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat retrieved", res))
}

func (c *chatController) UpdateChat(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}
	id, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateChatRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.UpdateChatTitle(ctx.UserContext(), user, id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Chat updated", res))
}

func (c *chatController) DeleteChat(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}
	id, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	if err := c.service.DeleteChat(ctx.UserContext(), user, id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chat deleted", nil))
}

func (c *chatController) AppendMessage(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}
	id, err := chatIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.AppendMessageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.AppendMessage(ctx.UserContext(), user, id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Message added", res))
}
