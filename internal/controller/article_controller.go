package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"articlegen-be/internal/dto"
	"articlegen-be/internal/pkg/serverutils"
	"articlegen-be/internal/service"
	"articlegen-be/pkg/apperror"
)

type IArticleController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	UpdateTitle(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type articleController struct {
	articleService service.IArticleService
}

func NewArticleController(articleService service.IArticleService) IArticleController {
	return &articleController{
		articleService: articleService,
	}
}

func (c *articleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/article/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id/title", c.UpdateTitle)
	h.Delete(":id", c.Delete)
}

func (c *articleController) Create(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	res, err := c.articleService.Create(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create article", res))
}

func (c *articleController) Show(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "invalid article id")
	}

	res, err := c.articleService.Show(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show article", res))
}

func (c *articleController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.articleService.List(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list articles", res))
}

func (c *articleController) UpdateTitle(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "invalid article id")
	}

	var req dto.UpdateArticleTitleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.articleService.UpdateTitle(ctx.Context(), userId, &req); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update title", nil))
}

func (c *articleController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "invalid article id")
	}

	if err := c.articleService.Delete(ctx.Context(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete article", nil))
}
