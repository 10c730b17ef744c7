package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/controller"
)

func FinancialRecordRoutes(api fiber.Router, db *gorm.DB) {
	h := &controller.FinancialRecordController{DB: db}

	r := api.Group("/financial-records")
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Post("/sweep-overdue", h.SweepOverdue)
	r.Get("/:id", h.GetByID)
	r.Post("/:id/pay", h.Pay)
	r.Post("/:id/cancel", h.Cancel)
	r.Post("/:id/refund", h.Refund)
	r.Post("/:id/write-off-late-fee", h.WriteOffLateFee)
}
