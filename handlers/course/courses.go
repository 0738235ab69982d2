package course

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/response"
	"github.com/CHYou2Sef/BridgeEd/utils/validation"
)

// CourseHandler handles catalog browsing and enrollment requests
type CourseHandler struct {
	catalog   *services.CatalogService
	sessions  *services.SessionService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(catalog *services.CatalogService, sessions *services.SessionService) *CourseHandler {
	return &CourseHandler{
		catalog:   catalog,
		sessions:  sessions,
		validator: validation.NewValidator(),
	}
}

// SetProgressRequest represents the request body for updating course progress
type SetProgressRequest struct {
	Progress int `json:"progress" validate:"min=0,max=100"`
}

// SetDueDateRequest represents the request body for setting a study due date
type SetDueDateRequest struct {
	DueDate *time.Time `json:"due_date"`
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	filter := services.CatalogFilter{
		Region: model.Region(c.Query("region", "")),
		Query:  c.Query("q", ""),
		Lang:   model.Language(c.Query("lang", "")),
	}

	if c.QueryBool("enrolled", false) {
		session := h.sessions.Current()
		if session == nil {
			return response.Unauthorized(c, "No active session")
		}
		filter.EnrolledOnly = true
		filter.Enrolled = session.User.Enrolled
	}

	return response.Success(c, h.catalog.Filter(filter))
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	course, ok := h.catalog.Course(c.Params("id"))
	if !ok {
		return response.NotFound(c, "Course not found")
	}

	return response.Success(c, course)
}

// Enroll handles POST /api/v1/courses/:id/enroll
func (h *CourseHandler) Enroll(c *fiber.Ctx) error {
	if err := h.sessions.Enroll(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}

	// Re-read the session so the response carries the new enrollment
	var user *model.User
	if session := h.sessions.Current(); session != nil {
		user = session.User
	}
	return response.SuccessWithMessage(c, "Enrolled successfully", user)
}

// Unenroll handles DELETE /api/v1/courses/:id/enroll
func (h *CourseHandler) Unenroll(c *fiber.Ctx) error {
	if err := h.sessions.Unenroll(c.Context(), c.Params("id")); err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Unenrolled successfully", nil)
}

// SetProgress handles PUT /api/v1/courses/:id/progress
func (h *CourseHandler) SetProgress(c *fiber.Ctx) error {
	var req SetProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if err := h.sessions.SetProgress(c.Context(), c.Params("id"), req.Progress); err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Progress updated", nil)
}

// SetDueDate handles PUT /api/v1/courses/:id/due-date
func (h *CourseHandler) SetDueDate(c *fiber.Ctx) error {
	var req SetDueDateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.sessions.SetDueDate(c.Context(), c.Params("id"), req.DueDate); err != nil {
		return response.DomainError(c, err)
	}

	return response.SuccessWithMessage(c, "Due date updated", nil)
}
