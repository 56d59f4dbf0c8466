package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tiendaflow/tienda-core/internal/application/usecase"
	"github.com/tiendaflow/tienda-core/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	CategoryUC  *usecase.CategoryUseCase
	MemberUC    *usecase.MemberUseCase
	AuthHandler *AuthHandler
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.AuthHandler.Register)
	authGroup.Post("/login", deps.AuthHandler.Login)
	authGroup.Get("/google", deps.AuthHandler.GoogleAuth)
	authGroup.Get("/google/callback", deps.AuthHandler.GoogleCallback)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), deps.AuthHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; cualquier miembro de la tienda)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.Get)
	products.Post("/", productHandler.Create)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Users de la tienda (protegido; escrituras solo owner/admin, reforzado en el use case)
	users := protected.Group("/users")
	memberHandler := NewMemberHandler(deps.MemberUC)
	users.Get("/", memberHandler.List)
	users.Post("/", RequireRole(entity.RoleOwner.String(), entity.RoleAdmin.String()), memberHandler.Create)
	users.Put("/:id", RequireRole(entity.RoleOwner.String(), entity.RoleAdmin.String()), memberHandler.Update)
	users.Delete("/:id", RequireRole(entity.RoleOwner.String(), entity.RoleAdmin.String()), memberHandler.Delete)
}
