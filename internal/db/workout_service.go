package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/balkashynov/tally/internal/dates"
	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/stats"
	"github.com/balkashynov/tally/internal/tracker"
)

// WorkoutService manages workouts, their exercises and completion log
type WorkoutService struct {
	store   *Store
	tracker *tracker.Tracker
}

func newWorkoutService(s *Store) *WorkoutService {
	ledger := &completionLedger[models.WorkoutCompletion]{
		store:    s,
		kind:     "workout",
		fkColumn: "workout_id",
		newRow: func(id, workoutID string, day, now time.Time) *models.WorkoutCompletion {
			return &models.WorkoutCompletion{
				ID:             id,
				WorkoutID:      workoutID,
				CompletionDate: day,
				CreatedAt:      now,
			}
		},
	}
	return &WorkoutService{store: s, tracker: tracker.New(ledger, s.clock)}
}

// CreateWorkoutRequest holds the data needed to create a workout
type CreateWorkoutRequest struct {
	Name              string
	Description       string
	Category          string
	Duration          int // minutes
	EstimatedCalories string
	Icon              string
	Color             string
	Exercises         []ExerciseInput
}

// ExerciseInput describes one exercise to add to a workout
type ExerciseInput struct {
	Name     string
	Sets     int
	Reps     int
	Weight   int
	Notes    string
	Position *int // appended after the last exercise when nil
}

// WorkoutPatch lists the workout fields to change; nil fields are left alone
type WorkoutPatch struct {
	Name              *string
	Description       *string
	Category          *string
	Duration          *int
	EstimatedCalories *string
	Icon              *string
	Color             *string
}

// ExercisePatch lists the exercise fields to change
type ExercisePatch struct {
	Name     *string
	Sets     *int
	Reps     *int
	Weight   *int
	Notes    *string
	Position *int
}

// CompletionLog holds the optional actuals recorded with a completion
type CompletionLog struct {
	ActualDuration *int
	ActualCalories *int
	Notes          string
}

// WorkoutDetails is a workout together with its derived figures
type WorkoutDetails struct {
	Workout          models.Workout      `json:"workout"`
	Exercises        []models.Exercise   `json:"exercises"`
	TotalCompletions int                 `json:"total_completions"`
	LastCompletion   *time.Time          `json:"last_completion,omitempty"`
	Frequency        int                 `json:"frequency"`
	Badge            string              `json:"badge,omitempty"`
	Totals           stats.WorkoutTotals `json:"totals"`
	Points           int                 `json:"points"`
}

// Tracker exposes the completion tracker backing this service
func (s *WorkoutService) Tracker() *tracker.Tracker {
	return s.tracker
}

// Create creates a workout and any exercises given with it in one transaction
func (s *WorkoutService) Create(ctx context.Context, req CreateWorkoutRequest) (*models.Workout, error) {
	workout := models.Workout{
		ID:                s.store.ids.New(),
		CreatedAt:         s.store.now(),
		Name:              req.Name,
		Description:       req.Description,
		Category:          orDefault(req.Category, models.DefaultWorkoutCategory),
		Duration:          req.Duration,
		EstimatedCalories: orDefault(req.EstimatedCalories, models.DefaultWorkoutCalories),
		Icon:              orDefault(req.Icon, models.DefaultWorkoutIcon),
		Color:             orDefault(req.Color, models.DefaultWorkoutColor),
	}

	err := s.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&workout).Error; err != nil {
			return err
		}
		for i, in := range req.Exercises {
			ex := s.newExercise(workout.ID, in, i)
			if err := tx.Create(&ex).Error; err != nil {
				return err
			}
			workout.Exercises = append(workout.Exercises, ex)
		}
		return nil
	})
	if err != nil {
		return nil, storeErr("create workout", err)
	}
	return &workout, nil
}

func (s *WorkoutService) newExercise(workoutID string, in ExerciseInput, position int) models.Exercise {
	ex := models.Exercise{
		ID:        s.store.ids.New(),
		WorkoutID: workoutID,
		Name:      in.Name,
		Sets:      in.Sets,
		Reps:      in.Reps,
		Weight:    in.Weight,
		Notes:     in.Notes,
		Position:  position,
	}
	if in.Position != nil {
		ex.Position = *in.Position
	}
	if ex.Sets <= 0 {
		ex.Sets = 3
	}
	if ex.Reps <= 0 {
		ex.Reps = 10
	}
	return ex
}

// GetAll returns every workout, newest first
func (s *WorkoutService) GetAll(ctx context.Context) ([]models.Workout, error) {
	var workouts []models.Workout
	if err := s.store.db.WithContext(ctx).Order("created_at DESC").Find(&workouts).Error; err != nil {
		return nil, storeErr("list workouts", err)
	}
	return workouts, nil
}

// GetByID retrieves a workout by ID with its exercises in order
func (s *WorkoutService) GetByID(ctx context.Context, id string) (*models.Workout, error) {
	var workout models.Workout
	err := s.store.db.WithContext(ctx).
		Preload("Exercises", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&workout, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("workout", id)
		}
		return nil, storeErr("find workout", err)
	}
	return &workout, nil
}

// Update applies a patch and returns the updated workout
func (s *WorkoutService) Update(ctx context.Context, id string, patch WorkoutPatch) (*models.Workout, error) {
	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
	}
	if patch.EstimatedCalories != nil {
		updates["estimated_calories"] = *patch.EstimatedCalories
	}
	if patch.Icon != nil {
		updates["icon"] = *patch.Icon
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if len(updates) == 0 {
		return s.GetByID(ctx, id)
	}

	result := s.store.db.WithContext(ctx).Model(&models.Workout{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, storeErr("update workout", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.NotFound("workout", id)
	}
	return s.GetByID(ctx, id)
}

// Delete removes a workout together with its exercises and completions
func (s *WorkoutService) Delete(ctx context.Context, id string) error {
	err := s.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("workout_id = ?", id).Delete(&models.WorkoutCompletion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workout_id = ?", id).Delete(&models.Exercise{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Workout{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperrors.NotFound("workout", id)
		}
		return nil
	})
	return storeErr("delete workout", err)
}

// Exercises returns a workout's exercises ordered by position
func (s *WorkoutService) Exercises(ctx context.Context, workoutID string) ([]models.Exercise, error) {
	var exercises []models.Exercise
	err := s.store.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("position ASC").
		Find(&exercises).Error
	if err != nil {
		return nil, storeErr("list exercises", err)
	}
	return exercises, nil
}

// AddExercise appends an exercise to an existing workout
func (s *WorkoutService) AddExercise(ctx context.Context, workoutID string, in ExerciseInput) (*models.Exercise, error) {
	if _, err := s.GetByID(ctx, workoutID); err != nil {
		return nil, err
	}

	var count int64
	if err := s.store.db.WithContext(ctx).Model(&models.Exercise{}).Where("workout_id = ?", workoutID).Count(&count).Error; err != nil {
		return nil, storeErr("count exercises", err)
	}

	ex := s.newExercise(workoutID, in, int(count))
	if err := s.store.db.WithContext(ctx).Create(&ex).Error; err != nil {
		return nil, storeErr("add exercise", err)
	}
	return &ex, nil
}

// UpdateExercise applies a patch to one exercise
func (s *WorkoutService) UpdateExercise(ctx context.Context, id string, patch ExercisePatch) (*models.Exercise, error) {
	var ex models.Exercise
	if err := s.store.db.WithContext(ctx).First(&ex, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("exercise", id)
		}
		return nil, storeErr("find exercise", err)
	}

	if patch.Name != nil {
		ex.Name = *patch.Name
	}
	if patch.Sets != nil {
		ex.Sets = *patch.Sets
	}
	if patch.Reps != nil {
		ex.Reps = *patch.Reps
	}
	if patch.Weight != nil {
		ex.Weight = *patch.Weight
	}
	if patch.Notes != nil {
		ex.Notes = *patch.Notes
	}
	if patch.Position != nil {
		ex.Position = *patch.Position
	}

	if err := s.store.db.WithContext(ctx).Save(&ex).Error; err != nil {
		return nil, storeErr("update exercise", err)
	}
	return &ex, nil
}

// DeleteExercise removes one exercise
func (s *WorkoutService) DeleteExercise(ctx context.Context, id string) error {
	result := s.store.db.WithContext(ctx).Delete(&models.Exercise{}, "id = ?", id)
	if result.Error != nil {
		return storeErr("delete exercise", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("exercise", id)
	}
	return nil
}

// LogCompletion records the workout as done on day's calendar day. A
// workout has at most one completion per day; logging again replaces
// that day's actuals.
func (s *WorkoutService) LogCompletion(ctx context.Context, workoutID string, day time.Time, entry CompletionLog) (*models.WorkoutCompletion, error) {
	if _, err := s.GetByID(ctx, workoutID); err != nil {
		return nil, err
	}

	start := dates.StartOfDay(day)
	var completion models.WorkoutCompletion
	err := s.store.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("workout_id = ? AND completion_date >= ? AND completion_date < ?",
			workoutID, start, dates.EndOfDay(day)).
			First(&completion).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			completion = models.WorkoutCompletion{
				ID:             s.store.ids.New(),
				CreatedAt:      s.store.now(),
				WorkoutID:      workoutID,
				CompletionDate: start,
			}
		case err != nil:
			return err
		}

		completion.ActualDuration = entry.ActualDuration
		completion.ActualCalories = entry.ActualCalories
		completion.Notes = entry.Notes
		return tx.Save(&completion).Error
	})
	if err != nil {
		return nil, storeErr("log workout completion", err)
	}
	return &completion, nil
}

// ToggleCompletion marks or unmarks the workout for day's calendar day and
// returns the new state.
func (s *WorkoutService) ToggleCompletion(ctx context.Context, workoutID string, day time.Time) (bool, error) {
	if _, err := s.GetByID(ctx, workoutID); err != nil {
		return false, err
	}
	return s.tracker.Toggle(ctx, workoutID, day)
}

// Completions returns the workout's completion log, newest first
func (s *WorkoutService) Completions(ctx context.Context, workoutID string) ([]models.WorkoutCompletion, error) {
	var completions []models.WorkoutCompletion
	err := s.store.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("completion_date DESC").
		Find(&completions).Error
	if err != nil {
		return nil, storeErr("list workout completions", err)
	}
	return completions, nil
}

// LastCompletion returns the most recent completion, or nil when there is none
func (s *WorkoutService) LastCompletion(ctx context.Context, workoutID string) (*models.WorkoutCompletion, error) {
	var completion models.WorkoutCompletion
	err := s.store.db.WithContext(ctx).
		Where("workout_id = ?", workoutID).
		Order("completion_date DESC").
		First(&completion).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("find last workout completion", err)
	}
	return &completion, nil
}

// Frequency counts completions within the trailing window of days
func (s *WorkoutService) Frequency(ctx context.Context, workoutID string, windowDays int) (int, error) {
	return s.tracker.FrequencyInWindow(ctx, workoutID, windowDays)
}

// CurrentStreak returns the workout's current run of consecutive days
func (s *WorkoutService) CurrentStreak(ctx context.Context, workoutID string) (int, error) {
	return s.tracker.CurrentStreak(ctx, workoutID)
}

// Details loads a workout with its exercises, completion figures and badge
func (s *WorkoutService) Details(ctx context.Context, workoutID string, windowDays int) (*WorkoutDetails, error) {
	workout, err := s.GetByID(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	completions, err := s.Completions(ctx, workoutID)
	if err != nil {
		return nil, err
	}
	freq, err := s.Frequency(ctx, workoutID, windowDays)
	if err != nil {
		return nil, err
	}

	d := &WorkoutDetails{
		Workout:          *workout,
		Exercises:        workout.Exercises,
		TotalCompletions: len(completions),
		Frequency:        freq,
		Badge:            tracker.FrequencyBadge(freq),
		Totals:           stats.ComputeWorkoutTotals(workout.Exercises),
		Points:           stats.WorkoutPoints(len(completions)),
	}
	if len(completions) > 0 {
		last := completions[0].CompletionDate
		d.LastCompletion = &last
	}
	return d, nil
}
