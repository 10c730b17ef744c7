package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/hostel/controller"
)

func HostelRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.HostelController{DB: db}

	r := api.Group("/hostel")
	r.Post("/rooms", h.CreateRoom)
	r.Get("/rooms", h.ListRooms)
	r.Post("/rooms/:id/check-in", h.CheckIn)
	r.Post("/occupancies/:id/check-out", h.CheckOut)
}
