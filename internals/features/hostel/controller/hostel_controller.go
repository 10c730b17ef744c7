package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/beerappa88/University-Finance-Application/internals/constants"
	dto "github.com/beerappa88/University-Finance-Application/internals/features/hostel/dto"
	model "github.com/beerappa88/University-Finance-Application/internals/features/hostel/model"
	service "github.com/beerappa88/University-Finance-Application/internals/features/hostel/service"
	helper "github.com/beerappa88/University-Finance-Application/internals/helpers"
	helperAuth "github.com/beerappa88/University-Finance-Application/internals/helpers/auth"
	"github.com/beerappa88/University-Finance-Application/internals/helpers/errs"
)

type HostelController struct {
	DB *gorm.DB
}

/* =========================
   Create room (POST /hostel/rooms)
   ========================= */

func (h *HostelController) CreateRoom(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceHostelRoom, constants.ActionCreate); err != nil {
		return helper.JsonFromError(c, err)
	}

	var req dto.CreateHostelRoomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}
	if err := helperAuth.EnsureCollege(c, req.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	var count int64
	if err := h.DB.WithContext(c.Context()).Model(&model.HostelRoom{}).
		Where("room_number = ?", req.RoomNumber).Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if count > 0 {
		return helper.JsonFromError(c, errs.Conflict("room_number already in use"))
	}

	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	room := req.ToModel(createdBy)
	if err := h.DB.WithContext(c.Context()).Create(room).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create room")
	}
	return helper.JsonCreated(c, "Room created", dto.FromRoomModel(room, 0))
}

/* =========================
   List rooms (GET /hostel/rooms)
   ========================= */

func (h *HostelController) ListRooms(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceHostelRoom, constants.ActionRead); err != nil {
		return helper.JsonFromError(c, err)
	}
	collegeID, err := helperAuth.GetCollegeID(c)
	if err != nil {
		return helper.JsonFromError(c, err)
	}

	pg := helper.ResolvePaging(c, 20, 100)

	q := h.DB.WithContext(c.Context()).Model(&model.HostelRoom{}).
		Where("college_id = ?", collegeID)
	if v := strings.TrimSpace(c.Query("room_type")); v != "" {
		q = q.Where("room_type = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	var rooms []model.HostelRoom
	if err := q.Order("room_number ASC").Offset(pg.Offset).Limit(pg.Limit).Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}

	out := make([]dto.HostelRoomResponse, 0, len(rooms))
	for i := range rooms {
		occupied, err := service.OpenOccupancies(h.DB.WithContext(c.Context()), rooms[i].ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
		}
		out = append(out, dto.FromRoomModel(&rooms[i], occupied))
	}

	return helper.JsonList(c, "OK", out, helper.BuildPagination(pg, total))
}

/* =========================
   Check-in (POST /hostel/rooms/:id/check-in)
   ========================= */

func (h *HostelController) CheckIn(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceHostelRoom, constants.ActionCheckIn); err != nil {
		return helper.JsonFromError(c, err)
	}

	roomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	var req dto.CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request format")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, err)
	}

	// tenant guard on the room before touching occupancies
	var room model.HostelRoom
	if err := h.DB.WithContext(c.Context()).
		Select("college_id").First(&room, "id = ?", roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("room not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := helperAuth.EnsureCollege(c, room.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	checkIn, err := req.ResolveCheckIn(time.Now().UTC())
	if err != nil {
		return helper.JsonFromError(c, errs.Validation("invalid check_in_date"))
	}

	var createdBy *uuid.UUID
	if uid, err := helperAuth.GetUserID(c); err == nil {
		createdBy = &uid
	}

	occ, err := service.CheckIn(h.DB.WithContext(c.Context()), roomID, req.UserID, checkIn, req.SecurityDepositPaid, createdBy)
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonCreated(c, "Checked in", occ)
}

/* =========================
   Check-out (POST /hostel/occupancies/:id/check-out)
   ========================= */

func (h *HostelController) CheckOut(c *fiber.Ctx) error {
	if err := helperAuth.RequirePermission(c, constants.ResourceHostelRoom, constants.ActionCheckOut); err != nil {
		return helper.JsonFromError(c, err)
	}

	occID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid id")
	}

	// tenant guard: the occupancy's room must belong to the caller's college
	db := h.DB.WithContext(c.Context())
	var occRow model.HostelOccupancy
	if err := db.Select("room_id").First(&occRow, "id = ?", occID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("occupancy not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	var room model.HostelRoom
	if err := db.Select("college_id").First(&room, "id = ?", occRow.RoomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonFromError(c, errs.NotFound("room not found"))
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "DB error")
	}
	if err := helperAuth.EnsureCollege(c, room.CollegeID); err != nil {
		return helper.JsonFromError(c, err)
	}

	occ, err := service.CheckOut(db, occID, time.Now().UTC())
	if err != nil {
		return helper.JsonFromError(c, err)
	}
	return helper.JsonUpdated(c, "Checked out", occ)
}
