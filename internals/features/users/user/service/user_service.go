// file: internals/features/users/user/service/user_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

// CreateUser persists a new user after enforcing system-wide uniqueness of
// email, username and (when present) student_id / employee_id. The password
// field must already be hashed by the caller.
func CreateUser(db *gorm.DB, u *model.User) error {
	var count int64
	q := db.Model(&model.User{}).
		Where("email = ? OR username = ?", u.Email, u.Username)
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return errs.Conflict("email or username already in use")
	}

	if u.StudentID != nil {
		if err := db.Model(&model.User{}).Where("student_id = ?", *u.StudentID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.Conflict("student_id already in use")
		}
	}
	if u.EmployeeID != nil {
		if err := db.Model(&model.User{}).Where("employee_id = ?", *u.EmployeeID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return errs.Conflict("employee_id already in use")
		}
	}

	return db.Create(u).Error
}

// AssignRole attaches a role to a user. The role must belong to the same
// college as the user; a bare FK cannot express that, so it is checked here.
func AssignRole(db *gorm.DB, userID, roleID uuid.UUID) error {
	var user model.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}

	var role model.Role
	if err := db.First(&role, "id = ?", roleID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("role not found")
		}
		return err
	}

	if role.CollegeID != user.CollegeID {
		return errs.TenantMismatch("role belongs to a different college than the user")
	}

	return db.Model(&user).Association("Roles").Append(&role)
}

// RemoveRole detaches a role from a user.
func RemoveRole(db *gorm.DB, userID, roleID uuid.UUID) error {
	var user model.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NotFound("user not found")
		}
		return err
	}
	return db.Model(&user).Association("Roles").Delete(&model.Role{ID: roleID})
}

// FindUserWithRoles loads a user together with roles and their permissions.
func FindUserWithRoles(db *gorm.DB, userID uuid.UUID) (*model.User, error) {
	var user model.User
	err := db.Preload("Roles.Permissions").First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}
