package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/audit/controller"
)

func AuditRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.AuditController{DB: db}

	r := api.Group("/audit-logs")
	r.Get("/", h.List)
}
