package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authService "github.com/beerappa88/University-Finance-Application/internals/features/users/auth/service"
	userDTO "github.com/beerappa88/University-Finance-Application/internals/features/users/user/dto"
	userService "github.com/beerappa88/University-Finance-Application/internals/features/users/user/service"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
)

type AuthController struct {
	DB *gorm.DB
}

/* ========================== REGISTER ========================== */

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req userDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	hashed, err := authService.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := req.ToModel(hashed, nil)
	if err := userService.CreateUser(h.DB.WithContext(c.Context()), user); err != nil {
		return helper.JsonFromError(c, err)
	}

	return helper.JsonCreated(c, "User registered", userDTO.FromUserModel(user))
}

/* ========================== LOGIN ========================== */

func (h *AuthController) Login(c *fiber.Ctx) error {
	var input struct {
		Identifier string `json:"identifier"` // email or username
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if strings.TrimSpace(input.Identifier) == "" || input.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "identifier and password are required")
	}

	db := h.DB.WithContext(c.Context())

	user, err := authService.Authenticate(db, input.Identifier, input.Password)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	perms := userService.EffectivePermissions(user.Roles)
	access, err := authService.IssueAccessToken(user.ID, user.CollegeID, perms)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	ua := c.Get("User-Agent")
	ip := c.IP()
	refresh, err := authService.IssueRefreshToken(db, user.ID, &ua, &ip)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}

	return helper.JsonOK(c, "Login successful", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
		"user":          userDTO.FromUserModel(user),
	})
}

/* ========================== REFRESH ========================== */

func (h *AuthController) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}

	db := h.DB.WithContext(c.Context())

	userID, err := authService.ConsumeRefreshToken(db, strings.TrimSpace(input.RefreshToken))
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	user, err := userService.FindUserWithRoles(db, userID)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	perms := userService.EffectivePermissions(user.Roles)
	access, err := authService.IssueAccessToken(user.ID, user.CollegeID, perms)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to sign token")
	}

	ua := c.Get("User-Agent")
	ip := c.IP()
	refresh, err := authService.IssueRefreshToken(db, user.ID, &ua, &ip)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to issue refresh token")
	}

	return helper.JsonOK(c, "Token refreshed", fiber.Map{
		"access_token":  access,
		"refresh_token": refresh,
		"token_type":    "bearer",
	})
}

/* ========================== LOGOUT ========================== */

func (h *AuthController) Logout(c *fiber.Ctx) error {
	userID, err := helperAuth.GetUserID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	if err := authService.RevokeRefreshTokens(h.DB.WithContext(c.Context()), userID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to revoke tokens")
	}
	return helper.JsonOK(c, "Logged out", nil)
}
