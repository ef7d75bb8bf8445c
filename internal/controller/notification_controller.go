package controller

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"articlegen-be/internal/pkg/logger"
	"articlegen-be/internal/pkg/serverutils"
	"articlegen-be/internal/service"
	internalWS "articlegen-be/internal/websocket"
	"articlegen-be/pkg/apperror"
)

type INotificationController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	MarkRead(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type notificationController struct {
	notificationService service.INotificationService
	hub                 *internalWS.Hub
	logger              logger.ILogger
}

func NewNotificationController(notificationService service.INotificationService, hub *internalWS.Hub, log logger.ILogger) INotificationController {
	return &notificationController{
		notificationService: notificationService,
		hub:                 hub,
		logger:              log,
	}
}

func (c *notificationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/notification/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Patch(":id/read", c.MarkRead)

	// The websocket handshake carries its own token so it skips JwtMiddleware.
	r.Get("/ws", c.ServeWs)
}

func (c *notificationController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	res, err := c.notificationService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list notifications", res))
}

func (c *notificationController) MarkRead(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "invalid notification id")
	}

	if err := c.notificationService.MarkRead(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success mark notification read", nil))
}

// ServeWs upgrades the connection after validating the JWT. Browsers cannot
// set headers on websocket handshakes, so the token is read from the query
// string first and the Authorization header second.
func (c *notificationController) ServeWs(ctx *fiber.Ctx) error {
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return apperror.New(apperror.CodeUnauthenticated, "missing token")
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.logger.Warn("NotificationController", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return apperror.New(apperror.CodeUnauthenticated, "invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return apperror.New(apperror.CodeUnauthenticated, "invalid token claims")
	}
	userIdStr, ok := claims["user_id"].(string)
	if !ok {
		return apperror.New(apperror.CodeUnauthenticated, "token missing user_id")
	}
	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return apperror.New(apperror.CodeUnauthenticated, "invalid user id in token")
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.logger.Info("NotificationController", "Starting WebSocket session", map[string]interface{}{"user_id": userId})
			internalWS.ServeWs(c.hub, conn, userId)
			c.logger.Info("NotificationController", "WebSocket session ended", map[string]interface{}{"user_id": userId})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
