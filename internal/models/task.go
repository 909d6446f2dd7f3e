package models

import (
	"strings"
	"time"
)

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// ParsePriority accepts low/medium/high (or med, 1/2/3) case-insensitively
func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low", "1":
		return PriorityLow, true
	case "medium", "med", "2":
		return PriorityMedium, true
	case "high", "3":
		return PriorityHigh, true
	default:
		return "", false
	}
}

// Task represents a todo item
type Task struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    Priority   `gorm:"not null;default:medium;index" json:"priority"`
	DueDate     *time.Time `gorm:"index" json:"due_date,omitempty"`
	Category    string     `json:"category,omitempty"`
	Completed   bool       `gorm:"not null;default:false;index" json:"completed"`
	Time        string     `json:"time,omitempty"` // free-form display time, e.g. "09:30"
}
