package models

import "time"

// Habit defaults
const (
	DefaultHabitColor           = "#10B981"
	DefaultHabitIcon            = "check"
	DefaultHabitTargetFrequency = 7
)

// Habit is a recurring activity tracked per calendar day
type Habit struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Name            string `gorm:"not null" json:"name"`
	Description     string `json:"description,omitempty"`
	Color           string `gorm:"not null;default:#10B981" json:"color"`
	Icon            string `gorm:"default:check" json:"icon"`
	TargetFrequency int    `gorm:"not null;default:7" json:"target_frequency"` // completions per week

	// Relationships
	Completions []HabitCompletion `gorm:"foreignKey:HabitID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// HabitCompletion marks a habit as done on one calendar day.
// CompletionDate is always midnight local time of that day.
type HabitCompletion struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	HabitID        string    `gorm:"not null;size:36;index:idx_habit_completion_day" json:"habit_id"`
	CompletionDate time.Time `gorm:"not null;index:idx_habit_completion_day" json:"completion_date"`
}
