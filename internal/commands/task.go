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
	"github.com/balkashynov/tally/internal/stats"
)

func newTaskCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage tasks",
	}
	cmd.AddCommand(
		newTaskAddCmd(a),
		newTaskListCmd(a),
		newTaskDoneCmd(a),
		newTaskEditCmd(a),
		newTaskRemoveCmd(a),
		newTaskSearchCmd(a),
		newTaskStatsCmd(a),
	)
	return cmd
}

func newTaskAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [task title]",
		Short: "Add a new task",
		Long: `Add a new task with optional metadata.

Smart parsing syntax:
  @category   - Category name
  +priority   - Priority (low/medium/high or 1/2/3)
  due:3days   - Due date (dd/mm/yyyy, yyyy-mm-dd, today, tomorrow, X days, X hours, X weeks)

Example:
  tally task add "Renew passport @admin +high due:2weeks"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed := parser.ParseTitle(strings.Join(args, " "), a.now())
			if len(parsed.Errors) > 0 {
				return apperrors.Validation("task", strings.Join(parsed.Errors, "; "))
			}
			if parsed.Title == "" {
				return apperrors.Validation("title", "must not be blank")
			}

			req := db.CreateTaskRequest{
				Title:    parsed.Title,
				Category: parsed.Category,
				Priority: parsed.Priority,
				DueDate:  parsed.DueDate,
			}

			// Explicit flags take precedence over parsed syntax
			req.Description, _ = cmd.Flags().GetString("desc")
			req.Time, _ = cmd.Flags().GetString("time")
			if category, _ := cmd.Flags().GetString("category"); category != "" {
				req.Category = category
			}
			if flagPriority, _ := cmd.Flags().GetString("priority"); flagPriority != "" {
				p, ok := models.ParsePriority(flagPriority)
				if !ok {
					return apperrors.Validation("priority", fmt.Sprintf("%q is not one of low, medium, high", flagPriority))
				}
				req.Priority = p
			}
			if flagDue, _ := cmd.Flags().GetString("due"); flagDue != "" {
				due, err := parser.ParseDueDate(flagDue, a.now())
				if err != nil {
					return apperrors.Validation("due", err.Error())
				}
				req.DueDate = due
			}

			task, err := a.store.Tasks().Create(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✅ Created task %s: %s\n", task.ID, task.Title)
			if task.Category != "" {
				fmt.Fprintf(out, "  Category: %s\n", task.Category)
			}
			fmt.Fprintf(out, "  Priority: %s\n", task.Priority)
			if task.DueDate != nil {
				fmt.Fprintf(out, "  Due: %s\n", parser.FormatDueDate(task.DueDate, a.now()))
			}
			return nil
		},
	}

	cmd.Flags().String("desc", "", "Description")
	cmd.Flags().StringP("category", "c", "", "Category")
	cmd.Flags().String("time", "", "Time of day, e.g. 09:30")
	cmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, or 1-3")
	cmd.Flags().String("due", "", "Due date: dd/mm/yyyy, yyyy-mm-dd, X days, X hours, X weeks")
	return cmd
}

func newTaskListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List tasks",
		Long:    "List tasks with optional filters for completion, priority and due date range",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, _ := cmd.Flags().GetString("filter")
			priority, _ := cmd.Flags().GetString("priority")
			from, _ := cmd.Flags().GetString("from")
			to, _ := cmd.Flags().GetString("to")
			jsonOutput, _ := cmd.Flags().GetBool("json")

			tasks, err := a.selectTasks(cmd, filter, priority, from, to)
			if err != nil {
				return err
			}

			if jsonOutput {
				if tasks == nil {
					tasks = []models.Task{}
				}
				return writeJSON(cmd.OutOrStdout(), tasks)
			}
			a.renderTaskTable(cmd, tasks)
			return nil
		},
	}

	cmd.Flags().StringP("filter", "f", "all", "Filter by completion: all, completed, pending")
	cmd.Flags().StringP("priority", "p", "", "Filter by priority")
	cmd.Flags().String("from", "", "Due on or after this day")
	cmd.Flags().String("to", "", "Due on or before this day")
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

// selectTasks runs the most selective store query, then applies the remaining filters
func (a *app) selectTasks(cmd *cobra.Command, filter, priority, from, to string) ([]models.Task, error) {
	ctx := cmd.Context()
	svc := a.store.Tasks()

	var wantPriority models.Priority
	if priority != "" {
		p, ok := models.ParsePriority(priority)
		if !ok {
			return nil, apperrors.Validation("priority", fmt.Sprintf("%q is not one of low, medium, high", priority))
		}
		wantPriority = p
	}

	var (
		tasks []models.Task
		err   error
	)
	switch {
	case from != "" || to != "":
		lo, hi, rangeErr := a.dueRange(from, to)
		if rangeErr != nil {
			return nil, rangeErr
		}
		tasks, err = svc.GetByDateRange(ctx, lo, hi)
	case filter == "completed":
		tasks, err = svc.GetCompleted(ctx)
	case filter == "pending":
		tasks, err = svc.GetPending(ctx)
	case filter == "all" || filter == "":
		if wantPriority != "" {
			return svc.GetByPriority(ctx, wantPriority)
		}
		tasks, err = svc.GetAll(ctx)
	default:
		return nil, apperrors.Validation("filter", fmt.Sprintf("%q is not one of all, completed, pending", filter))
	}
	if err != nil {
		return nil, err
	}

	var kept []models.Task
	for _, t := range tasks {
		if (filter == "completed" && !t.Completed) || (filter == "pending" && t.Completed) {
			continue
		}
		if wantPriority != "" && t.Priority != wantPriority {
			continue
		}
		kept = append(kept, t)
	}
	return kept, nil
}

// dueRange turns --from/--to into an inclusive range; an open end stays zero
func (a *app) dueRange(from, to string) (lo, hi time.Time, err error) {
	if from != "" {
		d, parseErr := parser.ParseDueDate(from, a.now())
		if parseErr != nil {
			return lo, hi, apperrors.Validation("from", parseErr.Error())
		}
		lo = dates.StartOfDay(*d)
	}
	if to != "" {
		d, parseErr := parser.ParseDueDate(to, a.now())
		if parseErr != nil {
			return lo, hi, apperrors.Validation("to", parseErr.Error())
		}
		hi = *d
	}
	return lo, hi, nil
}

func (a *app) renderTaskTable(cmd *cobra.Command, tasks []models.Task) {
	out := cmd.OutOrStdout()
	if len(tasks) == 0 {
		fmt.Fprintln(out, "No tasks found. Use 'tally task add \"task title\"' to create your first task.")
		return
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-4s %-40s %-15s %-5s %s", "DONE", "TITLE", "CATEGORY", "PRIO", "ID")))
	fmt.Fprintln(out, mutedStyle.Render(strings.Repeat("-", 80)))
	for _, task := range tasks {
		fmt.Fprintf(out, "%s %-40s %-15s %s %s\n",
			pad(checkbox(task.Completed), 4),
			truncate(task.Title, 40),
			truncate(task.Category, 15),
			pad(priorityLabel(task.Priority), 5),
			mutedStyle.Render(task.ID))
		if task.DueDate != nil && !task.Completed {
			fmt.Fprintf(out, "     %s\n", parser.FormatDueDate(task.DueDate, a.now()))
		}
	}
}

func newTaskDoneCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "done [task-id]",
		Short: "Toggle a task between done and pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := a.store.Tasks().ToggleComplete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if task.Completed {
				fmt.Fprintf(cmd.OutOrStdout(), "✅ Marked task as done: %s\n", task.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "↩️  Marked task back to pending: %s\n", task.Title)
			}
			return nil
		},
	}
}

func newTaskEditCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit [task-id]",
		Short: "Edit an existing task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := db.TaskPatch{
				Title:       changedString(cmd, "title"),
				Description: changedString(cmd, "desc"),
				Category:    changedString(cmd, "category"),
				Time:        changedString(cmd, "time"),
			}
			if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
				return apperrors.Validation("title", "must not be blank")
			}
			if raw := changedString(cmd, "priority"); raw != nil {
				p, ok := models.ParsePriority(*raw)
				if !ok {
					return apperrors.Validation("priority", fmt.Sprintf("%q is not one of low, medium, high", *raw))
				}
				patch.Priority = &p
			}
			if raw := changedString(cmd, "due"); raw != nil {
				due, err := parser.ParseDueDate(*raw, a.now())
				if err != nil {
					return apperrors.Validation("due", err.Error())
				}
				patch.DueDate = due
				patch.ClearDueDate = due == nil
			}
			if clearDue, _ := cmd.Flags().GetBool("clear-due"); clearDue {
				patch.ClearDueDate = true
			}

			task, err := a.store.Tasks().Update(cmd.Context(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✏️  Updated task %s: %s\n", task.ID, task.Title)
			return nil
		},
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("desc", "", "New description")
	cmd.Flags().StringP("category", "c", "", "New category")
	cmd.Flags().String("time", "", "New time of day")
	cmd.Flags().StringP("priority", "p", "", "New priority")
	cmd.Flags().String("due", "", "New due date")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")
	return cmd
}

func newTaskRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [task-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Tasks().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted task %s\n", args[0])
			return nil
		},
	}
}

func newTaskSearchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search tasks by title, description or category",
		Long:  "Search is case insensitive and matches anywhere in the title, description or category.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			tasks, err := a.store.Tasks().Search(cmd.Context(), query)
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"query":   query,
					"count":   len(tasks),
					"results": tasks,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🔍 %d result(s) for %q\n", len(tasks), query)
			if len(tasks) > 0 {
				a.renderTaskTable(cmd, tasks)
			}
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func newTaskStatsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store.Tasks().Statistics(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				return writeJSON(cmd.OutOrStdout(), s)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTaskStats(s))
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

// renderTaskStats draws the task statistics card
func renderTaskStats(s stats.TaskStatistics) string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Tasks"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Total %d   Completed %d   Pending %d\n", s.Total, s.Completed, s.Pending)
	fmt.Fprintf(&b, "Completion %s %.0f%%\n", bar(s.CompletionRate, 20), s.CompletionRate)
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d",
		priorityLabel(models.PriorityHigh), s.HighPriority,
		priorityLabel(models.PriorityMedium), s.MediumPriority,
		priorityLabel(models.PriorityLow), s.LowPriority)
	return boxStyle.Render(b.String())
}
