package controller

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"articlegen-be/internal/service"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
}

func NewOAuthController(service service.IOAuthService) IOAuthController {
	return &oauthController{service: service}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/oauth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		return err
	}

	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	code := ctx.Query("code")

	if code == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Missing code")
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, code)
	if err != nil {
		log.Printf("[OAuth] Callback failed: %v", err)
		return err
	}

	frontendURL := os.Getenv("CLIENT_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:5173"
	}

	// Hand the token to the frontend through the redirect URL.
	redirectURL := fmt.Sprintf("%s/app?token=%s", frontendURL, res.Token)
	return ctx.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}
