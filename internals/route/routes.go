package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditRoute "github.com/beerappa88/University-Finance-Application/internals/features/audit/route"
	collegeRoute "github.com/beerappa88/University-Finance-Application/internals/features/colleges/route"
	feeRoute "github.com/beerappa88/University-Finance-Application/internals/features/finance/feestructure/route"
	financeRoute "github.com/beerappa88/University-Finance-Application/internals/features/finance/records/route"
	hostelRoute "github.com/beerappa88/University-Finance-Application/internals/features/hostel/route"
	authRoute "github.com/beerappa88/University-Finance-Application/internals/features/users/auth/route"
	userRoute "github.com/beerappa88/University-Finance-Application/internals/features/users/user/route"
	"github.com/beerappa88/University-Finance-Application/internals/middlewares"
	authMW "github.com/beerappa88/University-Finance-Application/internals/middlewares/auth"
)

// SetupRoutes mounts the public auth endpoints and the protected API.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	api := app.Group("/api/v1")

	// public, with the stricter login limiter
	public := api.Group("", middlewares.LoginRateLimiter())
	authRoute.AuthPublicRoutes(public, db)

	// everything else requires a bearer token
	protected := api.Group("", authMW.AuthMiddleware(db))
	authRoute.AuthProtectedRoutes(protected, db)
	collegeRoute.CollegeRoutes(protected, db)
	userRoute.UserRoutes(protected, db)
	financeRoute.FinancialRecordRoutes(protected, db)
	feeRoute.FeeStructureRoutes(protected, db)
	hostelRoute.HostelRoutes(protected, db)
	auditRoute.AuditRoutes(protected, db)
}
