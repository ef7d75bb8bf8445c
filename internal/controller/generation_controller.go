package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"articlegen-be/internal/dto"
	"articlegen-be/internal/pkg/serverutils"
	"articlegen-be/internal/service"
	"articlegen-be/pkg/apperror"
)

type IGenerationController interface {
	RegisterRoutes(r fiber.Router)
	ExtractKeyPoints(ctx *fiber.Ctx) error
	GenerateArticle(ctx *fiber.Ctx) error
	RunStatus(ctx *fiber.Ctx) error
}

type generationController struct {
	generationService service.IGenerationService
}

func NewGenerationController(generationService service.IGenerationService) IGenerationController {
	return &generationController{
		generationService: generationService,
	}
}

func (c *generationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/generation/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("articles/:articleId/key-points", c.ExtractKeyPoints)
	h.Post("articles/:articleId/generate", c.GenerateArticle)
	h.Get("runs/:threadId", c.RunStatus)
}

func (c *generationController) ExtractKeyPoints(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	articleId, err := articleIdParam(ctx)
	if err != nil {
		return err
	}

	req := dto.ExtractKeyPointsRequest{ArticleId: articleId}

	res, err := c.generationService.ExtractKeyPoints(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success extract key points", res))
}

func (c *generationController) GenerateArticle(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	articleId, err := articleIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateArticleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ArticleId = articleId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.generationService.GenerateArticle(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate article", res))
}

func (c *generationController) RunStatus(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	threadId, err := uuid.Parse(ctx.Params("threadId"))
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "invalid thread id")
	}

	res, err := c.generationService.RunStatus(ctx.Context(), userId, threadId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get run status", res))
}
