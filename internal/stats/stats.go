// Package stats computes aggregate rollups over task and workout records.
package stats

import "github.com/balkashynov/tally/internal/models"

// TaskStatistics summarises the task collection.
type TaskStatistics struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	HighPriority   int     `json:"high_priority"`
	MediumPriority int     `json:"medium_priority"`
	LowPriority    int     `json:"low_priority"`
	CompletionRate float64 `json:"completion_rate"` // percent, 0 when there are no tasks
}

// ComputeTaskStatistics partitions tasks by completion and priority.
// Tasks with an unrecognised priority are counted as medium, the store default.
func ComputeTaskStatistics(tasks []models.Task) TaskStatistics {
	s := TaskStatistics{Total: len(tasks)}

	for _, t := range tasks {
		if t.Completed {
			s.Completed++
		}
		switch t.Priority {
		case models.PriorityHigh:
			s.HighPriority++
		case models.PriorityLow:
			s.LowPriority++
		default:
			s.MediumPriority++
		}
	}

	s.Pending = s.Total - s.Completed
	if s.Total > 0 {
		s.CompletionRate = float64(s.Completed) / float64(s.Total) * 100
	}
	return s
}

// PriorityShare returns the percentage of tasks with the given priority.
func (s TaskStatistics) PriorityShare(p models.Priority) float64 {
	if s.Total == 0 {
		return 0
	}
	var n int
	switch p {
	case models.PriorityHigh:
		n = s.HighPriority
	case models.PriorityMedium:
		n = s.MediumPriority
	case models.PriorityLow:
		n = s.LowPriority
	}
	return float64(n) / float64(s.Total) * 100
}

// WorkoutTotals is the training volume of a workout's exercises.
type WorkoutTotals struct {
	TotalWeight int `json:"total_weight"` // sum of weight x sets x reps
	TotalReps   int `json:"total_reps"`   // sum of sets x reps
}

// ComputeWorkoutTotals sums the volume of every exercise.
func ComputeWorkoutTotals(exercises []models.Exercise) WorkoutTotals {
	var w WorkoutTotals
	for _, ex := range exercises {
		reps := ex.Sets * ex.Reps
		w.TotalReps += reps
		w.TotalWeight += ex.Weight * reps
	}
	return w
}

// PointsPerCompletion is awarded for every logged workout.
const PointsPerCompletion = 10

// WorkoutPoints converts a completion count into points.
func WorkoutPoints(completions int) int {
	return completions * PointsPerCompletion
}
