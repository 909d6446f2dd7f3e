package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/models"
)

func TestTaskCreateDefaults(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	task, err := store.Tasks().Create(ctx, CreateTaskRequest{Title: "Write report"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", task.ID)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.False(t, task.Completed)
	assert.Nil(t, task.DueDate)
	assert.True(t, task.CreatedAt.Equal(testNow))

	got, err := store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write report", got.Title)
	assert.Equal(t, models.PriorityMedium, got.Priority)
}

func TestTaskGetByIDNotFound(t *testing.T) {
	store := setupTestStore(t, nil)

	_, err := store.Tasks().GetByID(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTaskUpdate(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	due := time.Date(2026, time.October, 20, 0, 0, 0, 0, time.Local)
	task, err := store.Tasks().Create(ctx, CreateTaskRequest{Title: "Draft", DueDate: &due})
	require.NoError(t, err)

	title := "Final"
	high := models.PriorityHigh
	updated, err := store.Tasks().Update(ctx, task.ID, TaskPatch{Title: &title, Priority: &high})
	require.NoError(t, err)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, models.PriorityHigh, updated.Priority)
	require.NotNil(t, updated.DueDate)
	assert.True(t, updated.DueDate.Equal(due))

	cleared, err := store.Tasks().Update(ctx, task.ID, TaskPatch{ClearDueDate: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.DueDate)

	_, err = store.Tasks().Update(ctx, "missing", TaskPatch{Title: &title})
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTaskToggleComplete(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	task, err := store.Tasks().Create(ctx, CreateTaskRequest{Title: "Laundry"})
	require.NoError(t, err)

	done, err := store.Tasks().ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, done.Completed)

	undone, err := store.Tasks().ToggleComplete(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, undone.Completed)
}

func TestTaskDelete(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()

	task, err := store.Tasks().Create(ctx, CreateTaskRequest{Title: "Temp"})
	require.NoError(t, err)

	require.NoError(t, store.Tasks().Delete(ctx, task.ID))

	_, err = store.Tasks().GetByID(ctx, task.ID)
	assert.True(t, apperrors.IsNotFound(err))

	err = store.Tasks().Delete(ctx, task.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestTaskQueries(t *testing.T) {
	store := setupTestStore(t, &stepClock{at: testNow, step: time.Minute})
	ctx := context.Background()
	svc := store.Tasks()

	day := func(d int) *time.Time {
		v := time.Date(2026, time.October, d, 0, 0, 0, 0, time.Local)
		return &v
	}

	_, err := svc.Create(ctx, CreateTaskRequest{Title: "a", Priority: models.PriorityHigh, DueDate: day(22)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskRequest{Title: "b", Priority: models.PriorityLow, DueDate: day(18), Completed: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskRequest{Title: "c", Priority: models.PriorityHigh, DueDate: day(30)})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskRequest{Title: "d"})
	require.NoError(t, err)

	all, err := svc.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "d", all[0].Title, "newest first")

	inRange, err := svc.GetByDateRange(ctx, *day(18), *day(22))
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, "b", inRange[0].Title)
	assert.Equal(t, "a", inRange[1].Title)

	openEnded, err := svc.GetByDateRange(ctx, *day(20), time.Time{})
	require.NoError(t, err)
	require.Len(t, openEnded, 2, "undated tasks never match a range")
	assert.Equal(t, "a", openEnded[0].Title)
	assert.Equal(t, "c", openEnded[1].Title)

	high, err := svc.GetByPriority(ctx, models.PriorityHigh)
	require.NoError(t, err)
	assert.Len(t, high, 2)

	completed, err := svc.GetCompleted(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, "b", completed[0].Title)

	pending, err := svc.GetPending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 3)
}

func TestTaskSearch(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()
	svc := store.Tasks()

	_, err := svc.Create(ctx, CreateTaskRequest{Title: "Buy MILK"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskRequest{Title: "Call mum", Description: "about the milkman"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateTaskRequest{Title: "Gym", Category: "health"})
	require.NoError(t, err)

	hits, err := svc.Search(ctx, "milk")
	require.NoError(t, err)
	assert.Len(t, hits, 2)

	hits, err = svc.Search(ctx, "HEALTH")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Gym", hits[0].Title)

	hits, err = svc.Search(ctx, "nothing")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTaskStatistics(t *testing.T) {
	store := setupTestStore(t, nil)
	ctx := context.Background()
	svc := store.Tasks()

	empty, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0.0, empty.CompletionRate)

	for _, req := range []CreateTaskRequest{
		{Title: "1", Priority: models.PriorityHigh, Completed: true},
		{Title: "2", Priority: models.PriorityHigh},
		{Title: "3", Priority: models.PriorityLow},
		{Title: "4"},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	s, err := svc.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 3, s.Pending)
	assert.Equal(t, 2, s.HighPriority)
	assert.Equal(t, 1, s.MediumPriority)
	assert.Equal(t, 1, s.LowPriority)
	assert.InDelta(t, 25.0, s.CompletionRate, 0.001)
}
