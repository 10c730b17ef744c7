package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/colleges/controller"
)

func CollegeRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.CollegeController{DB: db}

	r := api.Group("/colleges")
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
}
