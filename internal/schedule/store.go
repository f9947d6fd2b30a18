package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jazyl/booking-service/internal/httperr"
	"github.com/jazyl/booking-service/internal/models"
)

// ======================================================
// WEEKLY SCHEDULE
// ======================================================

// WeekdayHours is one weekday of a recurring schedule. Days are
// Monday-indexed (0 = Monday .. 6 = Sunday).
type WeekdayHours struct {
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	IsWorking bool   `json:"is_working"`
}

// Store manages a master's recurring weekly schedule and one-off block
// times.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ListWeekly(ctx context.Context, masterID uuid.UUID) ([]models.MasterSchedule, error) {
	var rows []models.MasterSchedule
	err := s.db.WithContext(ctx).
		Where("master_id = ?", masterID).
		Order("day_of_week ASC").
		Find(&rows).Error
	return rows, err
}

// ReplaceWeekly swaps the master's whole week atomically. Days absent from
// the input become non-working. Existing bookings are untouched; they were
// valid under the schedule in force when they were made.
func (s *Store) ReplaceWeekly(ctx context.Context, masterID uuid.UUID, days []WeekdayHours) error {
	seen := map[int]bool{}
	for _, d := range days {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 || seen[d.DayOfWeek] {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		seen[d.DayOfWeek] = true

		if d.IsWorking && !validHM(d.StartTime, d.EndTime) {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("master_id = ?", masterID).
			Delete(&models.MasterSchedule{}).Error; err != nil {
			return err
		}

		for _, d := range days {
			row := models.MasterSchedule{
				MasterID:  masterID,
				DayOfWeek: d.DayOfWeek,
				StartTime: d.StartTime,
				EndTime:   d.EndTime,
				IsWorking: d.IsWorking,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func validHM(start, end string) bool {
	s, err1 := time.Parse("15:04", start)
	e, err2 := time.Parse("15:04", end)
	return err1 == nil && err2 == nil && s.Before(e)
}

// ======================================================
// BLOCK TIMES
// ======================================================

func (s *Store) ListBlocks(ctx context.Context, masterID uuid.UUID, from, to time.Time) ([]models.BlockTime, error) {
	var blocks []models.BlockTime
	err := s.db.WithContext(ctx).
		Where("master_id = ? AND start_time < ? AND end_time > ?", masterID, to, from).
		Order("start_time ASC").
		Find(&blocks).Error
	return blocks, err
}

// CreateBlock rejects an interval that overlaps an existing block. Active
// bookings inside the window stay as they are; staff resolve those by
// cancelling.
func (s *Store) CreateBlock(ctx context.Context, block *models.BlockTime) error {
	if !block.StartTime.Before(block.EndTime) {
		return httperr.ErrBusiness(httperr.CodeValidation)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.
			Model(&models.BlockTime{}).
			Where(
				"master_id = ? AND start_time < ? AND end_time > ?",
				block.MasterID, block.EndTime, block.StartTime,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness(httperr.CodeValidation)
		}
		return tx.Create(block).Error
	})
}

func (s *Store) DeleteBlock(ctx context.Context, masterID, blockID uuid.UUID) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND master_id = ?", blockID, masterID).
		Delete(&models.BlockTime{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
