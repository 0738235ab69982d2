package practice

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
	"github.com/CHYou2Sef/BridgeEd/utils/validation"
)

// PracticeHandler handles exercise practice requests
type PracticeHandler struct {
	practice  *services.PracticeService
	sessions  *services.SessionService
	validator *validation.Validator
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practice *services.PracticeService, sessions *services.SessionService) *PracticeHandler {
	return &PracticeHandler{
		practice:  practice,
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// StartRequest represents the request body for starting a practice session
type StartRequest struct {
	Language string `json:"language" validate:"omitempty,oneof=en fr ar"`
}

// AnswerRequest represents the request body for recording a draft answer
type AnswerRequest struct {
	Answer string `json:"answer"`
}

// Start handles POST /api/v1/practice/:course_id/start
func (h *PracticeHandler) Start(c *fiber.Ctx) error {
	var req StartRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	lang := model.Language(req.Language)
	if !lang.IsValid() {
		lang = model.LangEnglish
	}

	exercise, err := h.practice.Start(c.Context(), c.Params("course_id"), lang)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, exercise)
}

// SetAnswer handles POST /api/v1/practice/:course_id/answer
func (h *PracticeHandler) SetAnswer(c *fiber.Ctx) error {
	var req AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.practice.SetAnswer(c.Params("course_id"), req.Answer); err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Answer recorded", nil)
}

// Submit handles POST /api/v1/practice/:course_id/submit
func (h *PracticeHandler) Submit(c *fiber.Ctx) error {
	courseID := c.Params("course_id")

	result, err := h.practice.Submit(c.Context(), courseID)
	if err != nil {
		return response.DomainError(c, err)
	}

	// Correct answers advance course progress in the learner ledger. A
	// failure to persist does not invalidate the grade itself, so the
	// result is returned either way.
	if result.IsCorrect {
		if err := h.sessions.RecordPracticeResult(c.Context(), courseID, result); err != nil {
			log.Printf("Warning: Failed to record practice result for %s: %v", courseID, err)
		}
	}

	return response.Success(c, result)
}

// Next handles POST /api/v1/practice/:course_id/next
func (h *PracticeHandler) Next(c *fiber.Ctx) error {
	exercise, err := h.practice.Next(c.Context(), c.Params("course_id"))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, exercise)
}

// GetView handles GET /api/v1/practice/:course_id
func (h *PracticeHandler) GetView(c *fiber.Ctx) error {
	view, err := h.practice.View(c.Params("course_id"))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Success(c, view)
}

// Close handles DELETE /api/v1/practice/:course_id
func (h *PracticeHandler) Close(c *fiber.Ctx) error {
	h.practice.Close(c.Params("course_id"))
	return response.SuccessWithMessage(c, "Practice session closed", nil)
}
