package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/tally/internal/dates"
	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/tracker"
)

// HabitService manages habits and their per-day completions
type HabitService struct {
	store   *Store
	tracker *tracker.Tracker
}

func newHabitService(s *Store) *HabitService {
	ledger := &completionLedger[models.HabitCompletion]{
		store:    s,
		kind:     "habit",
		fkColumn: "habit_id",
		newRow: func(id, habitID string, day, now time.Time) *models.HabitCompletion {
			return &models.HabitCompletion{
				ID:             id,
				HabitID:        habitID,
				CompletionDate: day,
				CreatedAt:      now,
			}
		},
	}
	return &HabitService{store: s, tracker: tracker.New(ledger, s.clock)}
}

// CreateHabitRequest holds the data needed to create a habit
type CreateHabitRequest struct {
	Name            string
	Description     string
	Color           string
	Icon            string
	TargetFrequency int // completions per week, defaults to 7
}

// HabitPatch lists the habit fields to change; nil fields are left alone
type HabitPatch struct {
	Name            *string
	Description     *string
	Color           *string
	Icon            *string
	TargetFrequency *int
}

// Tracker exposes the completion tracker backing this service
func (s *HabitService) Tracker() *tracker.Tracker {
	return s.tracker
}

// Create creates a new habit
func (s *HabitService) Create(ctx context.Context, req CreateHabitRequest) (*models.Habit, error) {
	habit := models.Habit{
		ID:              s.store.ids.New(),
		CreatedAt:       s.store.now(),
		Name:            req.Name,
		Description:     req.Description,
		Color:           orDefault(req.Color, models.DefaultHabitColor),
		Icon:            orDefault(req.Icon, models.DefaultHabitIcon),
		TargetFrequency: req.TargetFrequency,
	}
	if habit.TargetFrequency <= 0 {
		habit.TargetFrequency = models.DefaultHabitTargetFrequency
	}

	if err := s.store.db.WithContext(ctx).Create(&habit).Error; err != nil {
		return nil, storeErr("create habit", err)
	}
	return &habit, nil
}

// GetAll returns every habit, newest first
func (s *HabitService) GetAll(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.store.db.WithContext(ctx).Order("created_at DESC").Find(&habits).Error; err != nil {
		return nil, storeErr("list habits", err)
	}
	return habits, nil
}

// GetByID retrieves a habit by ID
func (s *HabitService) GetByID(ctx context.Context, id string) (*models.Habit, error) {
	var habit models.Habit
	if err := s.store.db.WithContext(ctx).First(&habit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("habit", id)
		}
		return nil, storeErr("find habit", err)
	}
	return &habit, nil
}

// Update applies a patch and returns the updated habit
func (s *HabitService) Update(ctx context.Context, id string, patch HabitPatch) (*models.Habit, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.TargetFrequency != nil {
		updates["target_frequency"] = *patch.TargetFrequency
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	result := s.store.db.WithContext(ctx).Model(&models.Habit{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, storeErr("update habit", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("habit", id)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a habit together with all of its completions
func (s *HabitService) Delete(ctx context.Context, id string) error {
	err := s.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", id).Delete(&models.HabitCompletion{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Habit{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("habit", id)
		}
		return nil
	})
	return storeErr("delete habit", err)
}

// Completions returns every completion of a habit, newest first
func (s *HabitService) Completions(ctx context.Context, habitID string) ([]models.HabitCompletion, error) {
	var completions []models.HabitCompletion
	err := s.store.db.WithContext(ctx).
		Where("habit_id = ?", habitID).
		Order("completion_date DESC").
		Find(&completions).Error
	if err != nil {
		return nil, storeErr("list habit completions", err)
	}
	return completions, nil
}

// CompletionsByMonth returns the completions that fall within one calendar month
func (s *HabitService) CompletionsByMonth(ctx context.Context, habitID string, year int, month time.Month) ([]models.HabitCompletion, error) {
	loc := s.store.now().Location()
	var completions []models.HabitCompletion
	err := s.store.db.WithContext(ctx).
		Where("habit_id = ? AND completion_date >= ? AND completion_date < ?",
			habitID, dates.StartOfMonth(year, month, loc), dates.EndOfMonth(year, month, loc)).
		Order("completion_date DESC").
		Find(&completions).Error
	if err != nil {
		return nil, storeErr("list habit completions", err)
	}
	return completions, nil
}

// ToggleCompletion marks or unmarks the habit for day's calendar day and
// returns the new state.
func (s *HabitService) ToggleCompletion(ctx context.Context, habitID string, day time.Time) (bool, error) {
	if _, err := s.GetByID(ctx, habitID); err != nil {
		return false, err
	}
	return s.tracker.Toggle(ctx, habitID, day)
}

// IsCompletedOnDay reports whether the habit was done on day's calendar day
func (s *HabitService) IsCompletedOnDay(ctx context.Context, habitID string, day time.Time) (bool, error) {
	return s.tracker.IsCompletedOnDay(ctx, habitID, day)
}

// CurrentStreak returns the habit's current run of consecutive days
func (s *HabitService) CurrentStreak(ctx context.Context, habitID string) (int, error) {
	return s.tracker.CurrentStreak(ctx, habitID)
}

// MonthlyProgress reports the completion share of one month
func (s *HabitService) MonthlyProgress(ctx context.Context, habitID string, year int, month time.Month) (tracker.Progress, error) {
	return s.tracker.MonthlyProgress(ctx, habitID, year, month)
}

// CompletedDaysInMonth returns the distinct completed days of one month
func (s *HabitService) CompletedDaysInMonth(ctx context.Context, habitID string, year int, month time.Month) ([]time.Time, error) {
	return s.tracker.CompletedDaysInMonth(ctx, habitID, year, month)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
