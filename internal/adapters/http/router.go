// Package http содержит компоненты HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"

	"notekeep/internal/adapters/http/auth"
	"notekeep/internal/adapters/http/middleware"
	"notekeep/internal/adapters/http/notes"
	"notekeep/internal/adapters/http/users"
	"notekeep/internal/ports/api"
	"notekeep/internal/ports/services"
)

// SetupRouter настраивает маршрутизацию HTTP сервера. Маршруты
// пользователей доступны только администраторам, маршруты заметок -
// любому аутентифицированному пользователю.
func SetupRouter(
	app *fiber.App,
	authUseCase api.AuthUseCase,
	userUseCase api.UserDirectoryUseCase,
	noteUseCase api.NoteUseCase,
	tokenService services.TokenService,
	denylist services.TokenDenylist,
) {
	authHandler := auth.NewHandler(authUseCase)
	usersHandler := users.NewHandler(userUseCase)
	notesHandler := notes.NewHandler(noteUseCase)

	requireAuth := middleware.NewAuthMiddleware(tokenService, denylist)
	requireAdmin := middleware.NewAdminMiddleware()

	// Middleware для всех запросов.
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	// Auth routes (публичные, кроме профиля).
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/register", authHandler.Register)
	authRoutes.Post("/login", authHandler.Login)
	authRoutes.Post("/refresh", authHandler.Refresh)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/profile", authHandler.GetProfile, requireAuth)

	// Справочник пользователей (только администраторы).
	userRoutes := apiV1.Group("/users")
	userRoutes.Use(requireAuth)
	userRoutes.Use(requireAdmin)
	userRoutes.Get("/", usersHandler.List)
	userRoutes.Post("/", usersHandler.Create)
	userRoutes.Get("/:user_id", usersHandler.Get)
	userRoutes.Put("/:user_id", usersHandler.Replace)
	userRoutes.Patch("/:user_id", usersHandler.Update)
	userRoutes.Delete("/:user_id", usersHandler.Delete)

	// Заметки вызывающего.
	noteRoutes := apiV1.Group("/notes")
	noteRoutes.Use(requireAuth)
	noteRoutes.Get("/", notesHandler.List)
	noteRoutes.Post("/", notesHandler.Create)
	noteRoutes.Get("/:note_id", notesHandler.Get)
	noteRoutes.Put("/:note_id", notesHandler.Replace)
	noteRoutes.Patch("/:note_id", notesHandler.Update)
	noteRoutes.Delete("/:note_id", notesHandler.Delete)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
