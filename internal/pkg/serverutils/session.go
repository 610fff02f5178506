package serverutils

import (
	"time"

	"ai-tutor-be/internal/entity"
	"ai-tutor-be/internal/pkg/apperror"
	"ai-tutor-be/pkg/auth/access"

	"github.com/gofiber/fiber/v2"
)

const (
	SessionCookieName = "session"
	userLocalKey      = "user"
)

type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

func SetSessionCookie(ctx *fiber.Ctx, cfg CookieConfig, token string, expiresAt time.Time) {
	ctx.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(cfg.TTL.Seconds()),
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func ClearSessionCookie(ctx *fiber.Ctx, cfg CookieConfig) {
	ctx.Cookie(&fiber.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   cfg.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func SessionToken(ctx *fiber.Ctx) string {
	return ctx.Cookies(SessionCookieName)
}

// SessionMiddleware resolves the session cookie to a user and rejects the
// request when there is none.
func SessionMiddleware(gate *access.Gate) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		user, err := gate.RequireAuthenticated(ctx.UserContext(), SessionToken(ctx))
		if err != nil {
			return err
		}
		ctx.Locals(userLocalKey, user)
		return ctx.Next()
	}
}

// AdminMiddleware must run after SessionMiddleware.
func AdminMiddleware(gate *access.Gate) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := gate.RequireAdmin(CurrentUser(ctx)); err != nil {
			return err
		}
		return ctx.Next()
	}
}

// CurrentUser returns the user SessionMiddleware stored, or nil.
func CurrentUser(ctx *fiber.Ctx) *entity.User {
	user, _ := ctx.Locals(userLocalKey).(*entity.User)
	return user
}

// RequireUser is CurrentUser for handlers mounted behind SessionMiddleware.
func RequireUser(ctx *fiber.Ctx) (*entity.User, error) {
	user := CurrentUser(ctx)
	if user == nil {
		return nil, apperror.ErrAuthRequired
	}
	return user, nil
}
