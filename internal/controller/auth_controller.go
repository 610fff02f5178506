package controller

import (
	"ai-tutor-be/internal/dto"
	"ai-tutor-be/internal/pkg/serverutils"
	"ai-tutor-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler)
	Signup(ctx *fiber.Ctx) error
	Login(ctx *fiber.Ctx) error
	Logout(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	service service.IAuthService
	cookie  serverutils.CookieConfig
}

func NewAuthController(service service.IAuthService, cookie serverutils.CookieConfig) IAuthController {
	return &authController{service: service, cookie: cookie}
}

func (c *authController) RegisterRoutes(r fiber.Router, sessionMiddleware fiber.Handler) {
	h := r.Group("/auth")
	h.Post("/signup", c.Signup)
	h.Post("/login", c.Login)
	h.Post("/logout", c.Logout)
	h.Get("/me", sessionMiddleware, c.Me)
}

func (c *authController) Signup(ctx *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Signup(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	serverutils.SetSessionCookie(ctx, c.cookie, res.Token, res.ExpiresAt)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Account created", res.User))
}

func (c *authController) Login(ctx *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Login(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	serverutils.SetSessionCookie(ctx, c.cookie, res.Token, res.ExpiresAt)
	return ctx.JSON(serverutils.SuccessResponse("Login successful", res.User))
}

// Logout succeeds with or without a live session and always clears the cookie.
func (c *authController) Logout(ctx *fiber.Ctx) error {
	if err := c.service.Logout(ctx.UserContext(), serverutils.SessionToken(ctx)); err != nil {
		return err
	}

	serverutils.ClearSessionCookie(ctx, c.cookie)
	return ctx.JSON(serverutils.SuccessResponse[any]("Logged out successfully", nil))
}

func (c *authController) Me(ctx *fiber.Ctx) error {
	user, err := serverutils.RequireUser(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Current user", c.service.Me(user)))
}
