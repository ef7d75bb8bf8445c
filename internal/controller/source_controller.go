package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"articlegen-be/internal/dto"
	"articlegen-be/internal/pkg/serverutils"
	"articlegen-be/internal/service"
	"articlegen-be/pkg/apperror"
)

type ISourceController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
}

type sourceController struct {
	sourceService service.ISourceService
}

func NewSourceController(sourceService service.ISourceService) ISourceController {
	return &sourceController{
		sourceService: sourceService,
	}
}

func (c *sourceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/article/v1/:articleId/sources")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.List)
	h.Post("search", c.Search)
	h.Delete(":entryId", c.Delete)
}

func articleIdParam(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("articleId"))
	if err != nil {
		return uuid.Nil, apperror.New(apperror.CodeValidationFailed, "invalid article id")
	}
	return id, nil
}

// Upload accepts a multipart file plus an optional kind field. The content
// type comes from the part header when present; otherwise it is guessed
// from the filename and bytes server-side.
func (c *sourceController) Upload(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	articleId, err := articleIdParam(ctx)
	if err != nil {
		return err
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "missing file upload")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	req := dto.AddSourceRequest{
		ArticleId: articleId,
		Filename:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		Kind:      ctx.FormValue("kind", "text"),
		Bytes:     data,
	}

	res, err := c.sourceService.Ingest(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	status := fiber.StatusCreated
	if !res.Created {
		status = fiber.StatusOK
	}
	return ctx.Status(status).JSON(serverutils.SuccessResponse("Success upload source", res))
}

func (c *sourceController) List(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	articleId, err := articleIdParam(ctx)
	if err != nil {
		return err
	}

	cursor := int64(ctx.QueryInt("cursor", 0))
	pageSize := ctx.QueryInt("page_size", 20)

	res, err := c.sourceService.ListSources(ctx.Context(), userId, articleId, cursor, pageSize)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sources", res))
}

func (c *sourceController) Delete(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	articleId, err := articleIdParam(ctx)
	if err != nil {
		return err
	}

	entryId, err := uuid.Parse(ctx.Params("entryId"))
	if err != nil {
		return apperror.New(apperror.CodeValidationFailed, "invalid entry id")
	}

	if err := c.sourceService.DeleteSource(ctx.Context(), userId, articleId, entryId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete source", nil))
}

func (c *sourceController) Search(ctx *fiber.Ctx) error {
	userId := serverutils.UserIdFromCtx(ctx)

	articleId, err := articleIdParam(ctx)
	if err != nil {
		return err
	}

	var req dto.SearchSourcesRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.ArticleId = articleId
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sourceService.SearchSources(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success search sources", res))
}
