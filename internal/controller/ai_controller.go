package controller

import (
	"smart-blog-be/internal/dto"
	"smart-blog-be/internal/pkg/serverutils"
	"smart-blog-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
}

type aiController struct {
	aiService service.IAIService
}

func NewAIController(aiService service.IAIService) IAIController {
	return &aiController{aiService: aiService}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Post("generate", c.Generate)
}

func (c *aiController) Generate(ctx *fiber.Ctx) error {
	var req dto.GenerateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.aiService.Generate(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate", res))
}
