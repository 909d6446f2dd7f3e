package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/stats"
)

// dashboard is everything the stats command reports
type dashboard struct {
	Tasks          stats.TaskStatistics `json:"tasks"`
	Notes          int64                `json:"notes"`
	Habits         int                  `json:"habits"`
	HabitsDone     int                  `json:"habits_done_today"`
	BestStreak     int                  `json:"best_streak"`
	BestStreakName string               `json:"best_streak_habit,omitempty"`
	Workouts       int                  `json:"workouts"`
	Sessions       int                  `json:"sessions"`
	Points         int                  `json:"points"`
}

func newStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show the statistics dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.collectDashboard(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDashboard(d))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func (a *app) collectDashboard(ctx context.Context) (dashboard, error) {
	var d dashboard
	var err error

	if d.Tasks, err = a.store.Tasks().Statistics(ctx); err != nil {
		return d, err
	}
	if d.Notes, err = a.store.Notes().Count(ctx); err != nil {
		return d, err
	}

	habitSvc := a.store.Habits()
	habits, err := habitSvc.GetAll(ctx)
	if err != nil {
		return d, err
	}
	d.Habits = len(habits)
	for _, h := range habits {
		done, err := habitSvc.IsCompletedOnDay(ctx, h.ID, a.now())
		if err != nil {
			return d, err
		}
		if done {
			d.HabitsDone++
		}
		streak, err := habitSvc.CurrentStreak(ctx, h.ID)
		if err != nil {
			return d, err
		}
		if streak > d.BestStreak {
			d.BestStreak = streak
			d.BestStreakName = h.Name
		}
	}

	workoutSvc := a.store.Workouts()
	workouts, err := workoutSvc.GetAll(ctx)
	if err != nil {
		return d, err
	}
	d.Workouts = len(workouts)
	for _, w := range workouts {
		completions, err := workoutSvc.Completions(ctx, w.ID)
		if err != nil {
			return d, err
		}
		d.Sessions += len(completions)
	}
	d.Points = stats.WorkoutPoints(d.Sessions)

	return d, nil
}

func renderDashboard(d dashboard) string {
	var habits strings.Builder
	habits.WriteString(headerStyle.Render("Habits"))
	fmt.Fprintf(&habits, "\n%d tracked, %d done today", d.Habits, d.HabitsDone)
	if d.BestStreak > 0 {
		fmt.Fprintf(&habits, "\nBest streak %s %s", warningStyle.Render(fmt.Sprintf("🔥 %d", d.BestStreak)), d.BestStreakName)
	}

	var workouts strings.Builder
	workouts.WriteString(headerStyle.Render("Workouts"))
	fmt.Fprintf(&workouts, "\n%d routines, %d sessions", d.Workouts, d.Sessions)
	fmt.Fprintf(&workouts, "\nPoints %s", badgeStyle.Render(fmt.Sprintf("%d", d.Points)))

	notes := headerStyle.Render("Notes") + fmt.Sprintf("\n%d written", d.Notes)

	right := lipgloss.JoinVertical(lipgloss.Left,
		boxStyle.Render(habits.String()),
		boxStyle.Render(workouts.String()),
		boxStyle.Render(notes),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, renderTaskStats(d.Tasks), " ", right)
}
