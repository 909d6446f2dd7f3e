package db

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/models"
)

// NoteService reads and writes notes
type NoteService struct {
	store *Store
}

// CreateNoteRequest holds the data needed to create a note
type CreateNoteRequest struct {
	Title   string
	Content string
	Color   string
	Pinned  bool
	Images  []string
}

// NotePatch lists the note fields to change; nil fields are left alone
type NotePatch struct {
	Title   *string
	Content *string
	Color   *string
	Pinned  *bool
	Images  *[]string
}

// Create creates a new note
func (s *NoteService) Create(ctx context.Context, req CreateNoteRequest) (*models.Note, error) {
	color := req.Color
	if color == "" {
		color = models.DefaultNoteColor
	}

	now := s.store.now()
	note := models.Note{
		ID:         s.store.ids.New(),
		CreatedAt:  now,
		ModifiedAt: now,
		Title:      req.Title,
		Content:    req.Content,
		Color:      color,
		Pinned:     req.Pinned,
		Images:     req.Images,
	}

	if err := s.store.db.WithContext(ctx).Create(&note).Error; err != nil {
		return nil, storeErr("create note", err)
	}
	return &note, nil
}

// GetAll returns pinned notes first, then the rest, newest first
func (s *NoteService) GetAll(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := s.store.db.WithContext(ctx).Order("pinned DESC").Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, storeErr("list notes", err)
	}
	return notes, nil
}

// GetPinned returns pinned notes, most recently modified first
func (s *NoteService) GetPinned(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	err := s.store.db.WithContext(ctx).
		Where("pinned = ?", true).
		Order("modified_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, storeErr("list pinned notes", err)
	}
	return notes, nil
}

// GetByID retrieves a note by ID
func (s *NoteService) GetByID(ctx context.Context, id string) (*models.Note, error) {
	var note models.Note
	if err := s.store.db.WithContext(ctx).First(&note, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("note", id)
		}
		return nil, storeErr("find note", err)
	}
	return &note, nil
}

// Update applies a patch and returns the updated note
func (s *NoteService) Update(ctx context.Context, id string, patch NotePatch) (*models.Note, error) {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		note.Title = *patch.Title
	}
	if patch.Content != nil {
		note.Content = *patch.Content
	}
	if patch.Color != nil {
		note.Color = *patch.Color
	}
	if patch.Pinned != nil {
		note.Pinned = *patch.Pinned
	}
	if patch.Images != nil {
		note.Images = *patch.Images
	}
	note.ModifiedAt = s.store.now()

	// Save writes zero values too, so unpinning sticks
	if err := s.store.db.WithContext(ctx).Save(note).Error; err != nil {
		return nil, storeErr("update note", err)
	}
	return note, nil
}

// TogglePin flips the pinned flag
func (s *NoteService) TogglePin(ctx context.Context, id string) (*models.Note, error) {
	note, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	pinned := !note.Pinned
	return s.Update(ctx, id, NotePatch{Pinned: &pinned})
}

// Delete removes a note
func (s *NoteService) Delete(ctx context.Context, id string) error {
	result := s.store.db.WithContext(ctx).Delete(&models.Note{}, "id = ?", id)
	if result.Error != nil {
		return storeErr("delete note", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound("note", id)
	}
	return nil
}

// Search matches title and content case-insensitively
func (s *NoteService) Search(ctx context.Context, query string) ([]models.Note, error) {
	notes, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	var matches []models.Note
	for _, n := range notes {
		if containsFold(n.Title, query) || containsFold(n.Content, query) {
			matches = append(matches, n)
		}
	}
	return matches, nil
}

// Count returns the number of notes
func (s *NoteService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.store.db.WithContext(ctx).Model(&models.Note{}).Count(&n).Error; err != nil {
		return 0, storeErr("count notes", err)
	}
	return n, nil
}
