package models

import "time"

// DefaultNoteColor is used when a note is created without a color
const DefaultNoteColor = "#8B7355"

// Note is a free-form text note
type Note struct {
	ID         string    `gorm:"primarykey;size:36" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `gorm:"autoUpdateTime" json:"modified_at"`

	Title   string   `gorm:"not null" json:"title"`
	Content string   `json:"content,omitempty"`
	Color   string   `gorm:"not null;default:#8B7355" json:"color"`
	Pinned  bool     `gorm:"not null;default:false;index" json:"pinned"`
	Images  []string `gorm:"serializer:json" json:"images,omitempty"` // attachment URIs
}
