package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/CHYou2Sef/BridgeEd/handlers"
	auth_handlers "github.com/CHYou2Sef/BridgeEd/handlers/auth"
	course_handlers "github.com/CHYou2Sef/BridgeEd/handlers/course"
	forum_handlers "github.com/CHYou2Sef/BridgeEd/handlers/forum"
	practice_handlers "github.com/CHYou2Sef/BridgeEd/handlers/practice"
	tutor_handlers "github.com/CHYou2Sef/BridgeEd/handlers/tutor"
	"github.com/CHYou2Sef/BridgeEd/model"
	"github.com/CHYou2Sef/BridgeEd/services"
	"github.com/CHYou2Sef/BridgeEd/utils/auth"
	"github.com/CHYou2Sef/BridgeEd/utils/middleware"
)

// Deps carries the constructed services the routes are wired against
type Deps struct {
	Tokens         *auth.TokenManager
	Sessions       *services.SessionService
	Catalog        *services.CatalogService
	Practice       *services.PracticeService
	Tutor          *services.TutorService
	Forum          *services.ForumService
	Gateway        *services.GatewayService
	AllowedOrigins string
}

func SetupRoutes(app *fiber.App, deps Deps) {
	// Initialize session middleware
	sessionMiddleware := middleware.NewSessionMiddleware(deps.Tokens, deps.Sessions)

	// Initialize handlers
	authHandler := auth_handlers.NewAuthHandler(deps.Sessions)
	courseHandler := course_handlers.NewCourseHandler(deps.Catalog, deps.Sessions)
	practiceHandler := practice_handlers.NewPracticeHandler(deps.Practice, deps.Sessions)
	tutorHandler := tutor_handlers.NewTutorHandler(deps.Tutor)
	forumHandler := forum_handlers.NewForumHandler(deps.Forum)
	healthHandler := handlers.NewHealthHandler(deps.Gateway)

	// Apply security middleware
	allowedOrigins := deps.AllowedOrigins
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:3001"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", healthHandler.Ping)

	// API v1 group
	api := app.Group("/api/v1")

	// Gateway health (public)
	api.Get("/health", healthHandler.GetHealth)

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.SignUp)
	authGroup.Post("/signin", authHandler.SignIn)
	authGroup.Get("/session", authHandler.GetSession)

	// Protected auth routes
	authGroup.Post("/signout", sessionMiddleware.Required(), authHandler.SignOut)

	// Courses routes
	courses := api.Group("/courses")
	courses.Get("/", courseHandler.ListCourses)  // Public: browse the catalog
	courses.Get("/:id", courseHandler.GetCourse) // Public: catalog entry by ID
	courses.Post("/:id/enroll", sessionMiddleware.Required(), courseHandler.Enroll)
	courses.Delete("/:id/enroll", sessionMiddleware.Required(), courseHandler.Unenroll)
	courses.Put("/:id/progress", sessionMiddleware.Required(), courseHandler.SetProgress)
	courses.Put("/:id/due-date", sessionMiddleware.Required(), courseHandler.SetDueDate)

	// Practice routes (pro subscribers only)
	practice := api.Group("/practice", sessionMiddleware.Required(), sessionMiddleware.RequireTier(model.TierPro))
	practice.Get("/:course_id", practiceHandler.GetView)
	practice.Post("/:course_id/start", practiceHandler.Start)
	practice.Post("/:course_id/answer", practiceHandler.SetAnswer)
	practice.Post("/:course_id/submit", practiceHandler.Submit)
	practice.Post("/:course_id/next", practiceHandler.Next)
	practice.Delete("/:course_id", practiceHandler.Close)

	// Tutor chat routes (protected, language-scoped)
	tutor := api.Group("/tutor", sessionMiddleware.Required())
	tutor.Get("/:lang", tutorHandler.GetHistory)
	tutor.Post("/:lang", tutorHandler.Append)
	tutor.Post("/:lang/reply", tutorHandler.Reply)
	tutor.Delete("/:lang", tutorHandler.Clear)

	// Forum routes
	forum := api.Group("/forum")
	forum.Get("/", forumHandler.ListPosts) // Public: seeded community posts
	forum.Post("/:id/translate", sessionMiddleware.Required(), forumHandler.TranslatePost)
}
