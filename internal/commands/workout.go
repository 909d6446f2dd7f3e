package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/db"
	apperrors "github.com/balkashynov/tally/internal/errors"
	"github.com/balkashynov/tally/internal/parser"
)

func newWorkoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workout",
		Aliases: []string{"workouts", "w"},
		Short:   "Manage workouts and log sessions",
	}
	cmd.AddCommand(
		newWorkoutAddCmd(a),
		newWorkoutListCmd(a),
		newWorkoutShowCmd(a),
		newWorkoutDoneCmd(a),
		newWorkoutToggleCmd(a),
		newWorkoutRemoveCmd(a),
		newExerciseCmd(a),
	)
	return cmd
}

func newWorkoutAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a workout",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := joinArgs("name", args)
			if err != nil {
				return err
			}
			duration, _ := cmd.Flags().GetInt("duration")
			if duration <= 0 {
				return apperrors.Validation("duration", "must be a positive number of minutes")
			}

			req := db.CreateWorkoutRequest{Name: name, Duration: duration}
			req.Description, _ = cmd.Flags().GetString("desc")
			req.Category, _ = cmd.Flags().GetString("category")
			req.EstimatedCalories, _ = cmd.Flags().GetString("calories")
			req.Icon, _ = cmd.Flags().GetString("icon")
			req.Color, _ = cmd.Flags().GetString("color")

			workout, err := a.store.Workouts().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "💪 Created workout %s: %s (%d min, %s)\n",
				workout.ID, workout.Name, workout.Duration, workout.Category)
			return nil
		},
	}
	cmd.Flags().IntP("duration", "d", 0, "Duration in minutes (required)")
	cmd.Flags().String("desc", "", "Description")
	cmd.Flags().StringP("category", "c", "", "Category (default Strength)")
	cmd.Flags().String("calories", "", "Estimated calories range, e.g. 200-300")
	cmd.Flags().String("icon", "", "Icon name")
	cmd.Flags().String("color", "", "Color (hex)")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

func newWorkoutListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List workouts with their frequency badge",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := a.store.Workouts()
			workouts, err := svc.GetAll(ctx)
			if err != nil {
				return err
			}

			details := make([]*db.WorkoutDetails, 0, len(workouts))
			for _, w := range workouts {
				d, err := svc.Details(ctx, w.ID, a.cfg.BadgeWindowDays)
				if err != nil {
					return err
				}
				details = append(details, d)
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), details)
			}

			out := cmd.OutOrStdout()
			if len(details) == 0 {
				fmt.Fprintln(out, "No workouts yet. Use 'tally workout add \"name\" --duration 45' to create one.")
				return nil
			}
			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-30s %-12s %-6s %-6s %s", "WORKOUT", "CATEGORY", "MIN", "BADGE", "ID")))
			for _, d := range details {
				badge := ""
				if d.Badge != "" {
					badge = badgeStyle.Render(d.Badge)
				}
				fmt.Fprintf(out, "%-30s %-12s %-6d %s %s\n",
					truncate(d.Workout.Name, 30),
					truncate(d.Workout.Category, 12),
					d.Workout.Duration,
					pad(badge, 6),
					mutedStyle.Render(d.Workout.ID))
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func newWorkoutShowCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [workout-id]",
		Short: "Show a workout's exercises, totals and history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.store.Workouts().Details(cmd.Context(), args[0], a.cfg.BadgeWindowDays)
			if err != nil {
				return err
			}
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.renderWorkoutDetails(d))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func (a *app) renderWorkoutDetails(d *db.WorkoutDetails) string {
	w := d.Workout
	var b strings.Builder

	b.WriteString(headerStyle.Render(w.Name))
	if d.Badge != "" {
		b.WriteString(" " + badgeStyle.Render(d.Badge))
	}
	if w.Description != "" {
		b.WriteString("\n" + mutedStyle.Render(w.Description))
	}
	fmt.Fprintf(&b, "\n%s · %d min · %s kcal", w.Category, w.Duration, w.EstimatedCalories)

	if len(d.Exercises) > 0 {
		b.WriteString("\n")
		for i, ex := range d.Exercises {
			line := fmt.Sprintf("%d. %s  %dx%d", i+1, ex.Name, ex.Sets, ex.Reps)
			if ex.Weight > 0 {
				line += fmt.Sprintf(" @ %dkg", ex.Weight)
			}
			fmt.Fprintf(&b, "\n%s  %s", line, mutedStyle.Render(ex.ID))
		}
	}

	fmt.Fprintf(&b, "\n\nTotal weight %d kg   Total reps %d", d.Totals.TotalWeight, d.Totals.TotalReps)
	fmt.Fprintf(&b, "\nCompleted %d time(s)   Points %d", d.TotalCompletions, d.Points)
	if d.LastCompletion != nil {
		fmt.Fprintf(&b, "\nLast done %s (%s)", formatDay(*d.LastCompletion), relativeDay(*d.LastCompletion, a.now()))
	}
	fmt.Fprintf(&b, "\nLast %d days: %d session(s)", a.cfg.BadgeWindowDays, d.Frequency)
	return boxStyle.Render(b.String())
}

func newWorkoutDoneCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done [workout-id]",
		Short: "Log a workout session with optional actuals",
		Long: `Log a workout as done for a day (default today). A workout holds one completion per day;
logging the same day again replaces that day's duration, calories and notes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dayArg, _ := cmd.Flags().GetString("day")
			day, err := parser.ParseDay(dayArg, a.now())
			if err != nil {
				return apperrors.Validation("day", err.Error())
			}

			entry := db.CompletionLog{
				ActualDuration: changedInt(cmd, "duration"),
				ActualCalories: changedInt(cmd, "calories"),
			}
			entry.Notes, _ = cmd.Flags().GetString("notes")
			if entry.ActualDuration != nil && *entry.ActualDuration <= 0 {
				return apperrors.Validation("duration", "must be a positive number of minutes")
			}
			if entry.ActualCalories != nil && *entry.ActualCalories < 0 {
				return apperrors.Validation("calories", "must not be negative")
			}

			completion, err := a.store.Workouts().LogCompletion(cmd.Context(), args[0], day, entry)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🏁 Logged workout for %s (%s)\n",
				formatDay(completion.CompletionDate), relativeDay(completion.CompletionDate, a.now()))
			return nil
		},
	}
	cmd.Flags().String("day", "", "Day of the session (default today)")
	cmd.Flags().Int("duration", 0, "Actual duration in minutes")
	cmd.Flags().Int("calories", 0, "Actual calories burned")
	cmd.Flags().String("notes", "", "Session notes")
	return cmd
}

func newWorkoutToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle [workout-id] [day]",
		Short: "Mark or unmark a workout for a day (default today)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parser.ParseDay(strings.Join(args[1:], " "), a.now())
			if err != nil {
				return apperrors.Validation("day", err.Error())
			}
			done, err := a.store.Workouts().ToggleCompletion(cmd.Context(), args[0], day)
			if err != nil {
				return err
			}
			if done {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked %s (%s)\n", formatDay(day), relativeDay(day, a.now()))
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "↩️  Unmarked %s (%s)\n", formatDay(day), relativeDay(day, a.now()))
			}
			return nil
		},
	}
}

func newWorkoutRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [workout-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a workout with its exercises and history",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Workouts().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted workout %s\n", args[0])
			return nil
		},
	}
}

func newExerciseCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "exercise",
		Aliases: []string{"ex"},
		Short:   "Manage a workout's exercises",
	}
	cmd.AddCommand(newExerciseAddCmd(a), newExerciseEditCmd(a), newExerciseRemoveCmd(a))
	return cmd
}

func newExerciseAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [workout-id] [name]",
		Short: "Append an exercise to a workout",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := joinArgs("name", args[1:])
			if err != nil {
				return err
			}
			in := db.ExerciseInput{Name: name}
			in.Sets, _ = cmd.Flags().GetInt("sets")
			in.Reps, _ = cmd.Flags().GetInt("reps")
			in.Weight, _ = cmd.Flags().GetInt("weight")
			in.Notes, _ = cmd.Flags().GetString("notes")
			if in.Sets <= 0 || in.Reps <= 0 {
				return apperrors.Validation("sets/reps", "must be positive")
			}
			if in.Weight < 0 {
				return apperrors.Validation("weight", "must not be negative")
			}

			ex, err := a.store.Workouts().AddExercise(cmd.Context(), args[0], in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "➕ Added %s %dx%d (exercise %s)\n", ex.Name, ex.Sets, ex.Reps, ex.ID)
			return nil
		},
	}
	cmd.Flags().Int("sets", 3, "Sets")
	cmd.Flags().Int("reps", 10, "Reps per set")
	cmd.Flags().Int("weight", 0, "Weight in kg")
	cmd.Flags().String("notes", "", "Notes")
	return cmd
}

func newExerciseEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [exercise-id]",
		Short: "Edit an exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := db.ExercisePatch{
				Name:     changedString(cmd, "name"),
				Sets:     changedInt(cmd, "sets"),
				Reps:     changedInt(cmd, "reps"),
				Weight:   changedInt(cmd, "weight"),
				Notes:    changedString(cmd, "notes"),
				Position: changedInt(cmd, "position"),
			}
			ex, err := a.store.Workouts().UpdateExercise(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✏️  Updated exercise %s: %s %dx%d\n", ex.ID, ex.Name, ex.Sets, ex.Reps)
			return nil
		},
	}
	cmd.Flags().String("name", "", "New name")
	cmd.Flags().Int("sets", 0, "New sets")
	cmd.Flags().Int("reps", 0, "New reps")
	cmd.Flags().Int("weight", 0, "New weight in kg")
	cmd.Flags().String("notes", "", "New notes")
	cmd.Flags().Int("position", 0, "New position in the workout")
	return cmd
}

func newExerciseRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [exercise-id]",
		Aliases: []string{"delete"},
		Short:   "Remove an exercise",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Workouts().DeleteExercise(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Removed exercise %s\n", args[0])
			return nil
		},
	}
}
