package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/tally/internal/models"
)

func TestComputeTaskStatisticsEmpty(t *testing.T) {
	assert.Equal(t, TaskStatistics{}, ComputeTaskStatistics(nil))
}

func TestComputeTaskStatistics(t *testing.T) {
	tasks := []models.Task{
		{Title: "a", Priority: models.PriorityHigh, Completed: true},
		{Title: "b", Priority: models.PriorityHigh},
		{Title: "c", Priority: models.PriorityMedium},
		{Title: "d", Priority: models.PriorityLow},
	}

	s := ComputeTaskStatistics(tasks)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 3, s.Pending)
	assert.Equal(t, 2, s.HighPriority)
	assert.Equal(t, 1, s.MediumPriority)
	assert.Equal(t, 1, s.LowPriority)
	assert.Equal(t, 25.0, s.CompletionRate)
	assert.Equal(t, s.Total, s.HighPriority+s.MediumPriority+s.LowPriority)
}

func TestComputeTaskStatisticsAllCompleted(t *testing.T) {
	tasks := []models.Task{
		{Priority: models.PriorityLow, Completed: true},
		{Priority: models.PriorityLow, Completed: true},
	}

	s := ComputeTaskStatistics(tasks)

	assert.Equal(t, 0, s.Pending)
	assert.Equal(t, 100.0, s.CompletionRate)
}

func TestPriorityShare(t *testing.T) {
	s := TaskStatistics{Total: 4, HighPriority: 2, MediumPriority: 1, LowPriority: 1}

	assert.Equal(t, 50.0, s.PriorityShare(models.PriorityHigh))
	assert.Equal(t, 25.0, s.PriorityShare(models.PriorityMedium))
	assert.Equal(t, 25.0, s.PriorityShare(models.PriorityLow))
	assert.Equal(t, 0.0, TaskStatistics{}.PriorityShare(models.PriorityHigh))
}

func TestComputeWorkoutTotals(t *testing.T) {
	exercises := []models.Exercise{
		{Name: "Squat", Sets: 3, Reps: 10, Weight: 60},
		{Name: "Push-up", Sets: 4, Reps: 15},
	}

	w := ComputeWorkoutTotals(exercises)

	assert.Equal(t, 1800, w.TotalWeight)
	assert.Equal(t, 90, w.TotalReps)
	assert.Equal(t, WorkoutTotals{}, ComputeWorkoutTotals(nil))
}

func TestWorkoutPoints(t *testing.T) {
	assert.Equal(t, 0, WorkoutPoints(0))
	assert.Equal(t, 70, WorkoutPoints(7))
}
