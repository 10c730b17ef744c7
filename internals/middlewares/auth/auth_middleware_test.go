package auth

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/beerappa88/University-Finance-Application/internals/configs"
	collegeModel "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
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
	))
	return db
}

func newGuardedApp(t *testing.T, db *gorm.DB) (*fiber.App, *userModel.User) {
	t.Helper()
	configs.JWTSecret = "test-access-secret"

	college := &collegeModel.College{Name: "IIT Goa", Code: "IITG", IsActive: true}
	require.NoError(t, db.Create(college).Error)

	user := &userModel.User{
		CollegeID: college.ID,
		Email:     "alice@example.edu",
		Username:  "alice",
		Password:  "hash",
		FirstName: "Alice",
		LastName:  "A",
		IsActive:  true,
	}
	require.NoError(t, db.Create(user).Error)

	app := fiber.New()
	app.Use(AuthMiddleware(db))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app, user
}

func TestAuthMiddlewareAcceptsSignedToken(t *testing.T) {
	db := openTestDB(t)
	app, user := newGuardedApp(t, db)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID.String(),
		"college_id": user.CollegeID.String(),
		"exp":        time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(configs.JWTSecret))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthMiddlewareRejectsUnsignedAlgorithm(t *testing.T) {
	db := openTestDB(t)
	app, user := newGuardedApp(t, db)

	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsWrongKey(t *testing.T) {
	db := openTestDB(t)
	app, user := newGuardedApp(t, db)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": user.ID.String(),
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	db := openTestDB(t)
	app, _ := newGuardedApp(t, db)

	resp, err := app.Test(httptest.NewRequest("GET", "/ping", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
