package forum

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
	"github.com/CHYou2Sef/BridgeEd/utils/validation"
)

// ForumHandler handles community forum requests
type ForumHandler struct {
	forum     *services.ForumService
	validator *validation.Validator
}

// NewForumHandler creates a new forum handler
func NewForumHandler(forum *services.ForumService) *ForumHandler {
	return &ForumHandler{
		forum:     forum,
		validator: validation.NewValidator(),
	}
}

// TranslateRequest represents the request body for translating a post
type TranslateRequest struct {
	Language string `json:"language" validate:"required,oneof=en fr ar"`
}

// ListPosts handles GET /api/v1/forum
func (h *ForumHandler) ListPosts(c *fiber.Ctx) error {
	return response.Success(c, h.forum.Posts())
}

// TranslatePost handles POST /api/v1/forum/:id/translate
func (h *ForumHandler) TranslatePost(c *fiber.Ctx) error {
	var req TranslateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	translated, err := h.forum.Translate(c.Context(), c.Params("id"), model.Language(req.Language))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, fiber.Map{
		"post_id":  c.Params("id"),
		"language": req.Language,
		"text":     translated,
	})
}
