package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/users/auth/controller"
)

// AuthPublicRoutes are reachable without a bearer token.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.AuthController{DB: db}

	r := api.Group("/auth")
	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh-token", h.Refresh)
}

// AuthProtectedRoutes require the auth middleware.
func AuthProtectedRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.AuthController{DB: db}

	r := api.Group("/auth")
	r.Post("/logout", h.Logout)
}
