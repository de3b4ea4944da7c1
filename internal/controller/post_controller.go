package controller

import (
	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/pkg/serverutils"
	"smart-blog-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPostController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Publish(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type postController struct {
	postService service.IPostService
	tokens      serverutils.TokenParser
}

func NewPostController(postService service.IPostService, tokens serverutils.TokenParser) IPostController {
	return &postController{
		postService: postService,
		tokens:      tokens,
	}
}

// RegisterRoutes mounts /posts. Posts are public; a bearer token only
// records authorship.
func (c *postController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/posts")
	h.Use(serverutils.OptionalJwtMiddleware(c.tokens))
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Post(":id/publish", c.Publish)
	h.Delete(":id", c.Delete)
}

func (c *postController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	var authorId *uuid.UUID
	if userId, ok := serverutils.UserID(ctx); ok {
		authorId = &userId
	}

	res, err := c.postService.Create(ctx.UserContext(), authorId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.CreatedResponse("Success create post", res))
}

func (c *postController) List(ctx *fiber.Ctx) error {
	var req dto.ListPostsRequest
	if err := ctx.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.List(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list posts", res))
}

func (c *postController) Show(ctx *fiber.Ctx) error {
	id, err := postID(ctx)
	if err != nil {
		return err
	}

	res, err := c.postService.Show(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show post", res))
}

func (c *postController) Update(ctx *fiber.Ctx) error {
	id, err := postID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdatePostRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.postService.Update(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update post", res))
}

func (c *postController) Publish(ctx *fiber.Ctx) error {
	id, err := postID(ctx)
	if err != nil {
		return err
	}

	res, err := c.postService.Publish(ctx.UserContext(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success publish post", res))
}

func (c *postController) Delete(ctx *fiber.Ctx) error {
	id, err := postID(ctx)
	if err != nil {
		return err
	}

	if err := c.postService.Delete(ctx.UserContext(), id); err != nil {
		return err
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

// postID parses the :id parameter. Ids that are not uuids cannot exist, so
// they are reported as not found.
func postID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, service.ErrPostNotFound
	}
	return id, nil
}
