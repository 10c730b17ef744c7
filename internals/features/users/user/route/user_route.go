package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "github.com/beerappa88/University-Finance-Application/internals/features/users/user/controller"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	users := &controller.UserController{DB: db}
	roles := &controller.RoleController{DB: db}

	u := api.Group("/users")
	u.Get("/", users.List)
	u.Get("/:id", users.GetByID)
	u.Post("/:id/roles", users.AssignRole)
	u.Delete("/:id/roles/:role_id", users.RemoveRole)

	r := api.Group("/roles")
	r.Post("/", roles.Create)
	r.Get("/", roles.List)
	r.Post("/:id/permissions", roles.AttachPermission)

	api.Post("/permissions", roles.CreatePermission)
}
