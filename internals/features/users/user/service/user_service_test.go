package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	collegeModel "github.com/beerappa88/University-Finance-Application/internals/features/colleges/model"
	model "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
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
		&model.User{},
		&model.Role{},
		&model.Permission{},
	))
	return db
}

func seedCollege(t *testing.T, db *gorm.DB, name, code string) *collegeModel.College {
	t.Helper()
	c := &collegeModel.College{Name: name, Code: code, IsActive: true}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedUser(t *testing.T, db *gorm.DB, collegeID uuid.UUID, email, username string) *model.User {
	t.Helper()
	u := &model.User{
		CollegeID: collegeID,
		Email:     email,
		Username:  username,
		Password:  "$2a$10$notarealhashbutlongenough0000000000000000000000000000",
		FirstName: "Test",
		LastName:  "User",
		IsActive:  true,
	}
	require.NoError(t, CreateUser(db, u))
	return u
}

func TestCreateUserUniqueness(t *testing.T) {
	db := openTestDB(t)
	college := seedCollege(t, db, "IIT Goa", "IITG")

	seedUser(t, db, college.ID, "a@example.edu", "alice")

	dupEmail := &model.User{
		CollegeID: college.ID,
		Email:     "a@example.edu",
		Username:  "alice2",
		Password:  "hash",
		FirstName: "A", LastName: "B",
		IsActive: true,
	}
	err := CreateUser(db, dupEmail)
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindUniquenessConflict))

	dupUsername := &model.User{
		CollegeID: college.ID,
		Email:     "b@example.edu",
		Username:  "alice",
		Password:  "hash",
		FirstName: "A", LastName: "B",
		IsActive: true,
	}
	err = CreateUser(db, dupUsername)
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindUniquenessConflict))

	// uniqueness is system-wide, not per tenant
	other := seedCollege(t, db, "NIT Surat", "NITS")
	crossTenant := &model.User{
		CollegeID: other.ID,
		Email:     "a@example.edu",
		Username:  "different",
		Password:  "hash",
		FirstName: "A", LastName: "B",
		IsActive: true,
	}
	err = CreateUser(db, crossTenant)
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindUniquenessConflict))
}

func TestCreateUserStudentIDUniqueness(t *testing.T) {
	db := openTestDB(t)
	college := seedCollege(t, db, "IIT Goa", "IITG")

	sid := "S-1001"
	first := &model.User{
		CollegeID: college.ID,
		Email:     "x@example.edu", Username: "xuser",
		Password: "hash", FirstName: "X", LastName: "Y",
		StudentID: &sid, IsActive: true,
	}
	require.NoError(t, CreateUser(db, first))

	second := &model.User{
		CollegeID: college.ID,
		Email:     "y@example.edu", Username: "yuser",
		Password: "hash", FirstName: "X", LastName: "Y",
		StudentID: &sid, IsActive: true,
	}
	err := CreateUser(db, second)
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindUniquenessConflict))
}

func TestAssignRoleSameTenant(t *testing.T) {
	db := openTestDB(t)
	college := seedCollege(t, db, "IIT Goa", "IITG")
	user := seedUser(t, db, college.ID, "a@example.edu", "alice")

	role := &model.Role{CollegeID: college.ID, Name: "accountant", IsActive: true}
	require.NoError(t, db.Create(role).Error)

	require.NoError(t, AssignRole(db, user.ID, role.ID))

	got, err := FindUserWithRoles(db, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Roles, 1)
	require.Equal(t, "accountant", got.Roles[0].Name)
}

func TestAssignRoleCrossTenantFails(t *testing.T) {
	db := openTestDB(t)
	collegeA := seedCollege(t, db, "IIT Goa", "IITG")
	collegeB := seedCollege(t, db, "NIT Surat", "NITS")
	user := seedUser(t, db, collegeA.ID, "a@example.edu", "alice")

	foreignRole := &model.Role{CollegeID: collegeB.ID, Name: "admin", IsActive: true}
	require.NoError(t, db.Create(foreignRole).Error)

	err := AssignRole(db, user.ID, foreignRole.ID)
	require.Error(t, err)
	require.True(t, errs.IsKind(err, errs.KindTenantMismatch))

	// nothing was attached
	got, err := FindUserWithRoles(db, user.ID)
	require.NoError(t, err)
	require.Empty(t, got.Roles)
}

func TestAssignRoleNotFound(t *testing.T) {
	db := openTestDB(t)
	college := seedCollege(t, db, "IIT Goa", "IITG")
	user := seedUser(t, db, college.ID, "a@example.edu", "alice")

	err := AssignRole(db, user.ID, uuid.New())
	require.True(t, errs.IsKind(err, errs.KindNotFound))

	err = AssignRole(db, uuid.New(), uuid.New())
	require.True(t, errs.IsKind(err, errs.KindNotFound))
}
