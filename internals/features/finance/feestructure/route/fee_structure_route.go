package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/finance/feestructure/controller"
)

func FeeStructureRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.FeeStructureController{DB: db}

	r := api.Group("/fee-structures")
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/:id", h.GetByID)
}
