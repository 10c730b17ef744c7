// file: internals/features/hostel/service/occupancy_service.go
package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	model "github.com/beerappa88/University-Finance-Application/internals/features/hostel/model"
	userModel "github.com/beerappa88/University-Finance-Application/internals/features/users/user/model"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CheckIn opens an occupancy for a user. The room row is locked for the
// duration of the capacity check, so two concurrent check-ins cannot
// over-book the room.
func CheckIn(db *gorm.DB, roomID, userID uuid.UUID, checkIn time.Time, depositPaid float64, createdBy *uuid.UUID) (*model.HostelOccupancy, error) {
	var occ *model.HostelOccupancy
	err := db.Transaction(func(tx *gorm.DB) error {
		var room model.HostelRoom
		if err := lockForUpdate(tx).First(&room, "id = ?", roomID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("room not found")
			}
			return err
		}

		var user userModel.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("user not found")
			}
			return err
		}
		if user.CollegeID != room.CollegeID {
			return errs.TenantMismatch("user belongs to a different college than the room")
		}

		var open int64
		if err := tx.Model(&model.HostelOccupancy{}).
			Where("room_id = ? AND check_out_date IS NULL", roomID).
			Count(&open).Error; err != nil {
			return err
		}
		if open >= int64(room.Capacity) {
			return errs.CapacityExceeded("room %s is at capacity (%d)", room.RoomNumber, room.Capacity)
		}

		occ = &model.HostelOccupancy{
			UserID:              userID,
			RoomID:              roomID,
			CheckInDate:         checkIn,
			SecurityDepositPaid: depositPaid,
			CreatedBy:           createdBy,
			IsActive:            true,
		}
		return tx.Create(occ).Error
	})
	return occ, err
}

// CheckOut closes an open occupancy. The row stays behind as history.
func CheckOut(db *gorm.DB, occupancyID uuid.UUID, checkOut time.Time) (*model.HostelOccupancy, error) {
	var occ model.HostelOccupancy
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&occ, "id = ?", occupancyID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.NotFound("occupancy not found")
			}
			return err
		}
		if occ.CheckOutDate != nil {
			return errs.Validation("occupancy is already checked out")
		}
		occ.CheckOutDate = &checkOut
		return tx.Save(&occ).Error
	})
	if err != nil {
		return nil, err
	}
	return &occ, nil
}

// OpenOccupancies counts current occupants of a room.
func OpenOccupancies(db *gorm.DB, roomID uuid.UUID) (int64, error) {
	var n int64
	err := db.Model(&model.HostelOccupancy{}).
		Where("room_id = ? AND check_out_date IS NULL", roomID).
		Count(&n).Error
	return n, err
}
