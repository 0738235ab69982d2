package tutor

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
	"github.com/CHYou2Sef/BridgeEd/utils/validation"
)

// TutorHandler handles tutoring chat requests. Routes are scoped by
// language; switching language swaps the whole conversation log.
type TutorHandler struct {
	tutor     *services.TutorService
	validator *validation.Validator
}

// NewTutorHandler creates a new tutor handler
func NewTutorHandler(tutor *services.TutorService) *TutorHandler {
	return &TutorHandler{
		tutor:     tutor,
		validator: validation.NewValidator(),
	}
}

// MessageRequest represents the request body for a chat message
type MessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=4000"`
}

// parseLang validates the :lang route parameter
func parseLang(c *fiber.Ctx) (model.Language, bool) {
	lang := model.Language(c.Params("lang"))
	return lang, lang.IsValid()
}

// activate loads the conversation log for the language unless it is
// already the active one
func (h *TutorHandler) activate(c *fiber.Ctx, lang model.Language) error {
	if h.tutor.ActiveLanguage() == lang {
		return nil
	}
	_, err := h.tutor.LoadForLanguage(c.Context(), lang)
	return err
}

// GetHistory handles GET /api/v1/tutor/:lang
func (h *TutorHandler) GetHistory(c *fiber.Ctx) error {
	lang, ok := parseLang(c)
	if !ok {
		return response.BadRequest(c, "Unsupported language")
	}
	if err := h.activate(c, lang); err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, fiber.Map{
		"language": lang,
		"messages": h.tutor.History(),
	})
}

// Append handles POST /api/v1/tutor/:lang
func (h *TutorHandler) Append(c *fiber.Ctx) error {
	lang, ok := parseLang(c)
	if !ok {
		return response.BadRequest(c, "Unsupported language")
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.activate(c, lang); err != nil {
		return response.DomainError(c, err)
	}

	msg, err := h.tutor.Append(c.Context(), model.MessageRoleUser, validation.SanitizeString(req.Text))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, msg)
}

// Reply handles POST /api/v1/tutor/:lang/reply
func (h *TutorHandler) Reply(c *fiber.Ctx) error {
	lang, ok := parseLang(c)
	if !ok {
		return response.BadRequest(c, "Unsupported language")
	}

	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.activate(c, lang); err != nil {
		return response.DomainError(c, err)
	}

	reply, err := h.tutor.RequestReply(c.Context(), validation.SanitizeString(req.Text))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, reply)
}

// Clear handles DELETE /api/v1/tutor/:lang
func (h *TutorHandler) Clear(c *fiber.Ctx) error {
	lang, ok := parseLang(c)
	if !ok {
		return response.BadRequest(c, "Unsupported language")
	}

	if err := h.tutor.Clear(c.Context(), lang); err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Chat history cleared", nil)
}
