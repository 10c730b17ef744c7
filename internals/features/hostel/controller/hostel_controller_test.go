package controller

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	collegeModel "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
	model "github.com/beerappa88/University-Finance-Application/internals/features/hostel/model"
	service "github.com/beerappa88/University-Finance-Application/internals/features/hostel/service"
	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&collegeModel.College{},
		&userModel.User{},
		&userModel.Role{},
		&userModel.Permission{},
		&model.HostelRoom{},
		&model.HostelOccupancy{},
	))
	return db
}

func newApp(db *gorm.DB, collegeID uuid.UUID, permissions []string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(helperAuth.LocalsUserID, uuid.NewString())
		c.Locals(helperAuth.LocalsCollegeID, collegeID.String())
		c.Locals(helperAuth.LocalsPermissions, permissions)
		return c.Next()
	})

	h := &HostelController{DB: db}
	app.Post("/hostel/occupancies/:id/check-out", h.CheckOut)
	return app
}

// seedOccupancy builds a college with one occupied room and returns the
// open occupancy.
func seedOccupancy(t *testing.T, db *gorm.DB, name, code, roomNumber string) (*collegeModel.College, *model.HostelOccupancy) {
	t.Helper()

	college := &collegeModel.College{Name: name, Code: code, IsActive: true}
	require.NoError(t, db.Create(college).Error)

	student := &userModel.User{
		CollegeID: college.ID,
		Email:     code + "@example.edu",
		Username:  "student-" + code,
		Password:  "hash",
		FirstName: "Stu",
		LastName:  "Dent",
		IsActive:  true,
	}
	require.NoError(t, db.Create(student).Error)

	room := &model.HostelRoom{
		CollegeID:       college.ID,
		RoomNumber:      roomNumber,
		RoomType:        "single",
		Capacity:        1,
		MonthlyRent:     4500,
		SecurityDeposit: 10000,
		IsActive:        true,
	}
	require.NoError(t, db.Create(room).Error)

	occ, err := service.CheckIn(db, room.ID, student.ID, time.Now(), 10000, nil)
	require.NoError(t, err)
	return college, occ
}

func TestCheckOutCrossTenantForbidden(t *testing.T) {
	db := openTestDB(t)
	collegeA := &collegeModel.College{Name: "IIT Goa", Code: "IITG", IsActive: true}
	require.NoError(t, db.Create(collegeA).Error)
	_, occ := seedOccupancy(t, db, "NIT Surat", "NITS", "B-201")

	app := newApp(db, collegeA.ID, []string{"hostel_room:check_out"})

	req := httptest.NewRequest("POST", "/hostel/occupancies/"+occ.ID.String()+"/check-out", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// the foreign-tenant occupancy stays open
	var got model.HostelOccupancy
	require.NoError(t, db.First(&got, "id = ?", occ.ID).Error)
	require.Nil(t, got.CheckOutDate)
}

func TestCheckOutOwnTenantSucceeds(t *testing.T) {
	db := openTestDB(t)
	college, occ := seedOccupancy(t, db, "IIT Goa", "IITG", "A-101")

	app := newApp(db, college.ID, []string{"hostel_room:check_out"})

	req := httptest.NewRequest("POST", "/hostel/occupancies/"+occ.ID.String()+"/check-out", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var got model.HostelOccupancy
	require.NoError(t, db.First(&got, "id = ?", occ.ID).Error)
	require.NotNil(t, got.CheckOutDate)
}

func TestCheckOutUnknownOccupancy(t *testing.T) {
	db := openTestDB(t)
	college := &collegeModel.College{Name: "IIT Goa", Code: "IITG", IsActive: true}
	require.NoError(t, db.Create(college).Error)

	app := newApp(db, college.ID, []string{"hostel_room:check_out"})

	req := httptest.NewRequest("POST", "/hostel/occupancies/"+uuid.NewString()+"/check-out", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
