package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
	"github.com/CHYou2Sef/BridgeEd/utils/validation"
)

// AuthHandler handles sign-in, sign-up and session lifecycle requests
type AuthHandler struct {
	sessions  *services.SessionService
	validator *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// SignInRequest represents the request body for signing in
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// SignUpRequest represents the request body for signing up
type SignUpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Tier  string `json:"tier" validate:"omitempty,oneof=free student pro"`
}

// SignIn handles POST /api/v1/auth/signin
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
	var req SignInRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	session, err := h.sessions.SignIn(c.Context(), req.Email, req.Password)
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Signed in successfully", session)
}

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	req.Name = validation.SanitizeString(req.Name)

	session, err := h.sessions.SignUp(c.Context(), req.Email, req.Name, model.SubscriptionTier(req.Tier))
	if err != nil {
		return response.DomainError(c, err)
	}

	return response.Created(c, session)
}

// SignOut handles POST /api/v1/auth/signout
func (h *AuthHandler) SignOut(c *fiber.Ctx) error {
	if err := h.sessions.SignOut(c.Context()); err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Signed out successfully", nil)
}

// GetSession handles GET /api/v1/auth/session
func (h *AuthHandler) GetSession(c *fiber.Ctx) error {
	session := h.sessions.Current()
	if session == nil {
		return response.NotFound(c, "No active session")
	}

	return response.Success(c, session)
}
