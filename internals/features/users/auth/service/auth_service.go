// file: internals/features/users/auth/service/auth_service.go
package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

// HashPassword hashes a plaintext password for storage. The plaintext never
// reaches a model or a log line.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Authenticate resolves an identifier (email or username) + password to a
// user with roles and permissions preloaded.
func Authenticate(db *gorm.DB, identifier, password string) (*userModel.User, error) {
	identifier = strings.TrimSpace(strings.ToLower(identifier))

	var user userModel.User
	err := db.Preload("Roles.Permissions").
		Where("LOWER(email) = ? OR LOWER(username) = ?", identifier, identifier).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Denied("invalid credentials")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, errs.Denied("account is deactivated")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errs.Denied("invalid credentials")
	}
	return &user, nil
}
