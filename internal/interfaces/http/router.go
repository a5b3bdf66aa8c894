package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps handlers y secretos que necesita el armado de rutas.
type RouterDeps struct {
	JWTSecret string

	Auth     *AuthHandler
	Category *CategoryHandler
	Product  *ProductHandler
	Order    *OrderHandler
	Pricing  *PricingHandler
}

// Router registra todas las rutas de la API. /api/auth es público; el
// resto de /api exige Bearer JWT.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", deps.Auth.Register)
	authGroup.Post("/login", deps.Auth.Login)

	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	categories := protected.Group("/categories")
	categories.Post("/", deps.Category.Create)
	categories.Get("/", deps.Category.List)
	categories.Get("/:id", deps.Category.GetByID)

	products := protected.Group("/products")
	products.Post("/", deps.Product.Create)
	products.Get("/", deps.Product.List)
	// bulk antes de :id para que no lo capture el parámetro
	products.Post("/bulk", deps.Product.BulkUpload)
	products.Get("/:id", deps.Product.GetByID)

	orders := protected.Group("/orders")
	orders.Post("/", deps.Order.Create)
	orders.Get("/:id", deps.Order.GetByID)

	protected.Get("/average-price/:id", deps.Pricing.AveragePrice)
}
