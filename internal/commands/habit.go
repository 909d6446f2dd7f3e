package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/dates"
	"github.com/balkashynov/tally/internal/db"
	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/models"
	"github.com/balkashynov/tally/internal/parser"
	"github.com/balkashynov/tally/internal/tui"
)

func newHabitCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "habit",
		Aliases: []string{"habits", "h"},
		Short:   "Track habits day by day",
	}
	cmd.AddCommand(
		newHabitAddCmd(a),
		newHabitListCmd(a),
		newHabitToggleCmd(a),
		newHabitShowCmd(a),
		newHabitCalendarCmd(a),
		newHabitRemoveCmd(a),
	)
	return cmd
}

func newHabitAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a habit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := joinArgs("name", args)
			if err != nil {
				return err
			}
			desc, _ := cmd.Flags().GetString("desc")
			color, _ := cmd.Flags().GetString("color")
			icon, _ := cmd.Flags().GetString("icon")
			target, _ := cmd.Flags().GetInt("target")
			if target < 1 || target > 7 {
				return apperrors.Validation("target", "must be between 1 and 7 days a week")
			}

			habit, err := a.store.Habits().Create(cmd.Context(), db.CreateHabitRequest{
				Name:            name,
				Description:     desc,
				Color:           color,
				Icon:            icon,
				TargetFrequency: target,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🌱 Created habit %s: %s (%dx a week)\n", habit.ID, habit.Name, habit.TargetFrequency)
			return nil
		},
	}
	cmd.Flags().String("desc", "", "Description")
	cmd.Flags().String("color", "", "Color (hex)")
	cmd.Flags().String("icon", "", "Icon name")
	cmd.Flags().Int("target", models.DefaultHabitTargetFrequency, "Target completions per week")
	return cmd
}

// habitRow is a habit with today's state and streak, as listed
type habitRow struct {
	models.Habit
	DoneToday bool `json:"done_today"`
	Streak    int  `json:"streak"`
}

func newHabitListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List habits with today's state and streak",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := a.store.Habits()
			habits, err := svc.GetAll(ctx)
			if err != nil {
				return err
			}

			rows := make([]habitRow, 0, len(habits))
			for _, h := range habits {
				done, err := svc.IsCompletedOnDay(ctx, h.ID, a.now())
				if err != nil {
					return err
				}
				streak, err := svc.CurrentStreak(ctx, h.ID)
				if err != nil {
					return err
				}
				rows = append(rows, habitRow{Habit: h, DoneToday: done, Streak: streak})
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), rows)
			}

			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintln(out, "No habits yet. Use 'tally habit add \"name\"' to start one.")
				return nil
			}
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-5s %-30s %-10s %s", "TODAY", "HABIT", "STREAK", "ID")))
			for _, r := range rows {
				fmt.Fprintf(out, "%s %-30s %s %s\n",
					pad(checkbox(r.DoneToday), 5),
					truncate(r.Name, 30),
					pad(warningStyle.Render(fmt.Sprintf("🔥 %d", r.Streak)), 10),
					mutedStyle.Render(r.ID))
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func newHabitToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [habit-id] [day]",
		Short: "Mark or unmark a habit for a day (default today)",
		Long: `Mark or unmark a habit for one calendar day. Toggling twice restores the original state.

Day formats: today, yesterday, "N days ago", dd/mm/yyyy, yyyy-mm-dd`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parser.ParseDay(strings.Join(args[1:], " "), a.now())
			if err != nil {
				return apperrors.Validation("day", err.Error())
			}

			svc := a.store.Habits()
			done, err := svc.ToggleCompletion(cmd.Context(), args[0], day)
			if err != nil {
				return err
			}
			streak, err := svc.CurrentStreak(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if done {
				fmt.Fprintf(out, "✅ Marked %s (%s)\n", formatDay(day), relativeDay(day, a.now()))
			} else {
				fmt.Fprintf(out, "↩️  Unmarked %s (%s)\n", formatDay(day), relativeDay(day, a.now()))
			}
			fmt.Fprintf(out, "Current streak: %s\n", warningStyle.Render(fmt.Sprintf("🔥 %d", streak)))
			return nil
		},
	}
}

func newHabitShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [habit-id]",
		Short: "Show a habit's streak and monthly progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			monthArg, _ := cmd.Flags().GetString("month")
			year, month, err := parser.ParseMonth(monthArg, a.now())
			if err != nil {
				return apperrors.Validation("month", err.Error())
			}

			ctx := cmd.Context()
			svc := a.store.Habits()
			habit, err := svc.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			streak, err := svc.CurrentStreak(ctx, habit.ID)
			if err != nil {
				return err
			}
			progress, err := svc.MonthlyProgress(ctx, habit.ID, year, month)
			if err != nil {
				return err
			}
			days, err := svc.CompletedDaysInMonth(ctx, habit.ID, year, month)
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"habit":          habit,
					"streak":         streak,
					"month":          fmt.Sprintf("%04d-%02d", year, int(month)),
					"progress":       progress,
					"completed_days": days,
				})
			}

			var b strings.Builder
			b.WriteString(headerStyle.Render(habit.Name))
			if habit.Description != "" {
				b.WriteString("\n" + mutedStyle.Render(habit.Description))
			}
			fmt.Fprintf(&b, "\nStreak   %s", warningStyle.Render(fmt.Sprintf("🔥 %d day(s)", streak)))
			fmt.Fprintf(&b, "\n%s %s %d/%d days (%.0f%%)",
				dates.StartOfMonth(year, month, time.Local).Format("Jan 2006"),
				bar(progress.Percentage, 20), progress.CompletedDays, progress.TotalDays, progress.Percentage)
			if len(days) > 0 {
				labels := make([]string, len(days))
				for i, d := range days {
					labels[i] = d.Format("02")
				}
				fmt.Fprintf(&b, "\nDone on  %s", strings.Join(labels, " "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), boxStyle.Render(b.String()))
			return nil
		},
	}
	cmd.Flags().String("month", "", "Month as yyyy-mm (default current month)")
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func newHabitCalendarCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cal [habit-id]",
		Short: "Open the interactive habit calendar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := a.store.Habits()
			habit, err := svc.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return tui.RunHabitCalendar(svc.Tracker(), a.clock, habit.ID, habit.Name)
		},
	}
}

func newHabitRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [habit-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a habit and all of its completions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Habits().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted habit %s\n", args[0])
			return nil
		},
	}
}
