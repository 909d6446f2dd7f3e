package models

import "time"

// Workout defaults
const (
	DefaultWorkoutCategory = "Strength"
	DefaultWorkoutCalories = "0-0"
	DefaultWorkoutIcon     = "dumbbell"
	DefaultWorkoutColor    = "#EF4444"
)

// Workout is a reusable training routine
type Workout struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name              string `gorm:"not null" json:"name"`
	Description       string `json:"description,omitempty"`
	Category          string `gorm:"default:Strength" json:"category"`
	Duration          int    `gorm:"not null" json:"duration"` // minutes
	// EstimatedCalories is a free text range such as "200-300"
	EstimatedCalories string `gorm:"default:0-0" json:"estimated_calories"`
	Icon              string `gorm:"default:dumbbell" json:"icon"`
	Color             string `gorm:"not null;default:#EF4444" json:"color"`

	// Relationships
	Exercises   []Exercise          `gorm:"foreignKey:WorkoutID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"exercises,omitempty"`
	Completions []WorkoutCompletion `gorm:"foreignKey:WorkoutID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Exercise is one ordered step of a workout
type Exercise struct {
	ID        string `gorm:"primarykey;size:36" json:"id"`
	WorkoutID string `gorm:"not null;size:36;index" json:"workout_id"`

	Name     string `gorm:"not null" json:"name"`
	Sets     int    `gorm:"not null;default:3" json:"sets"`
	Reps     int    `gorm:"not null;default:10" json:"reps"`
	Weight   int    `gorm:"default:0" json:"weight"`
	Notes    string `json:"notes,omitempty"`
	Position int    `gorm:"not null;default:0" json:"position"`
}

// WorkoutCompletion records a workout performed on one calendar day
type WorkoutCompletion struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	WorkoutID      string    `gorm:"not null;size:36;index:idx_workout_completion_day" json:"workout_id"`
	CompletionDate time.Time `gorm:"not null;index:idx_workout_completion_day" json:"completion_date"`
	ActualDuration *int      `json:"actual_duration,omitempty"` // minutes
	ActualCalories *int      `json:"actual_calories,omitempty"`
	Notes          string    `json:"notes,omitempty"`
}
