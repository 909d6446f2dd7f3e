package db

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// completionLedger adapts one completion table to tracker.Ledger.
// T is the completion model; fkColumn names its parent column.
type completionLedger[T any] struct {
	store    *Store
	kind     string
	fkColumn string
	newRow   func(id, entityID string, day, now time.Time) *T
}

// completionStamp is the projection read back from either completion table.
type completionStamp struct {
	CompletionDate time.Time
}

func (l *completionLedger[T]) scope(ctx context.Context, entityID string, from, to time.Time) *gorm.DB {
	q := l.store.db.WithContext(ctx).Model(new(T)).Where(l.fkColumn+" = ?", entityID)
	if !from.IsZero() {
		q = q.Where("completion_date >= ?", from)
	}
	if !to.IsZero() {
		q = q.Where("completion_date < ?", to)
	}
	return q
}

// CompletionDates returns completion dates in [from, to), newest first.
func (l *completionLedger[T]) CompletionDates(ctx context.Context, entityID string, from, to time.Time) ([]time.Time, error) {
	var rows []completionStamp
	err := l.scope(ctx, entityID, from, to).
		Select("completion_date").
		Order("completion_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, storeErr("read "+l.kind+" completions", err)
	}

	stamps := make([]time.Time, len(rows))
	for i, r := range rows {
		stamps[i] = r.CompletionDate
	}
	return stamps, nil
}

// AddCompletion inserts a completion stamped at day.
func (l *completionLedger[T]) AddCompletion(ctx context.Context, entityID string, day time.Time) error {
	row := l.newRow(l.store.ids.New(), entityID, day, l.store.now())
	if err := l.store.db.WithContext(ctx).Create(row).Error; err != nil {
		return storeErr("add "+l.kind+" completion", err)
	}
	return nil
}

// RemoveCompletions deletes every completion in [from, to).
func (l *completionLedger[T]) RemoveCompletions(ctx context.Context, entityID string, from, to time.Time) error {
	if err := l.scope(ctx, entityID, from, to).Delete(new(T)).Error; err != nil {
		return storeErr("remove "+l.kind+" completion", err)
	}
	return nil
}
