package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHelpCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "help [command]",
		Short:       "Show comprehensive help for tally",
		Long:        `Display an overview of every tally command, or the full help of one command.`,
		Annotations: map[string]string{skipStore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				target, _, err := cmd.Root().Find(args)
				if err != nil {
					return err
				}
				return target.Help()
			}
			fmt.Fprint(cmd.OutOrStdout(), overview)
			return nil
		},
	}
}

const overview = `
████████╗ █████╗ ██╗     ██╗  ██╗   ██╗
╚══██╔══╝██╔══██╗██║     ██║  ╚██╗ ██╔╝
   ██║   ███████║██║     ██║   ╚████╔╝
   ██║   ██╔══██║██║     ██║    ╚██╔╝
   ██║   ██║  ██║███████╗███████╗██║
   ╚═╝   ╚═╝  ╚═╝╚══════╝╚══════╝╚═╝

tally - tasks, notes, habits and workouts in your terminal

COMMANDS:

  task add <title>          Create a task with smart parsing
    --priority, -p          Priority: low|medium|high
    --category, -c          Category
    --due                   Due date (dd/mm/yyyy, 3 days, 2 weeks)
    --desc, --time          Description and time of day

    Smart syntax:
      @category     Set category
      +priority     Set priority (low/medium/high)
      due:3days     Set due date

    Example:
      tally task add "Renew passport @admin +high due:2weeks"

  task ls                   List tasks
    --filter, -f            all|completed|pending
    --priority, -p          Only one priority
    --from, --to            Due date range
    --json                  JSON output
  task done <id>            Toggle done/pending
  task edit <id>            Edit fields (--title, --priority, --due, --clear-due, ...)
  task rm <id>              Delete a task
  task search <query>       Search title, description and category
  task stats                Completion and priority breakdown

  note add <title>          Write a note (--content, --color, --pin, --image)
  note ls                   Pinned notes first (--pinned, --json)
  note pin <id>             Pin/unpin
  note rm <id>              Delete
  note search <query>       Search title and content

  habit add <name>          Start a habit (--target days per week)
  habit ls                  Today's state and streak of every habit
  habit toggle <id> [day]   Mark/unmark a day (today, yesterday, "3 days ago", dd/mm/yyyy)
  habit show <id>           Streak and monthly progress (--month yyyy-mm)
  habit cal <id>            Interactive calendar
    ←/→  ↑/↓                Move by day / week
    [ ]                     Previous / next month
    space                   Toggle day
    q                       Quit
  habit rm <id>             Delete with all completions

  workout add <name>        Create a routine (--duration minutes, --category, --calories)
  workout ls                Routines with frequency badges
  workout show <id>         Exercises, totals, points and history
  workout done <id>         Log a session (--day, --duration, --calories, --notes)
  workout toggle <id> [day] Mark/unmark a day
  workout rm <id>           Delete with exercises and history
  workout exercise add <workout-id> <name>   (--sets, --reps, --weight)
  workout exercise edit <exercise-id>
  workout exercise rm <exercise-id>

  stats                     Dashboard across everything
  version                   Version information
  help [command]            This overview, or one command's help

GLOBAL FLAGS:
  --db <path>               Database file (env TALLY_DB)
  --debug                   Debug logging (env TALLY_DEBUG)
  --id-format uuid|nanoid   Identifier format for new records (env TALLY_ID_FORMAT)

`
