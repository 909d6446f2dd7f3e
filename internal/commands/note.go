package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/tally/internal/db"
	"github.com/balkashynov/tally/internal/models"
)

func newNoteCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"notes", "n"},
		Short:   "Manage notes",
	}
	cmd.AddCommand(
		newNoteAddCmd(a),
		newNoteListCmd(a),
		newNotePinCmd(a),
		newNoteRemoveCmd(a),
		newNoteSearchCmd(a),
	)
	return cmd
}

func newNoteAddCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [title]",
		Short: "Add a note",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := joinArgs("title", args)
			if err != nil {
				return err
			}
			content, _ := cmd.Flags().GetString("content")
			color, _ := cmd.Flags().GetString("color")
			pinned, _ := cmd.Flags().GetBool("pin")
			images, _ := cmd.Flags().GetStringSlice("image")

			note, err := a.store.Notes().Create(cmd.Context(), db.CreateNoteRequest{
				Title:   title,
				Content: content,
				Color:   color,
				Pinned:  pinned,
				Images:  images,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "📝 Created note %s: %s\n", note.ID, note.Title)
			return nil
		},
	}
	cmd.Flags().String("content", "", "Note body")
	cmd.Flags().String("color", "", "Card color (hex)")
	cmd.Flags().Bool("pin", false, "Pin the note")
	cmd.Flags().StringSlice("image", nil, "Attached image URI (repeatable)")
	return cmd
}

func newNoteListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List notes, pinned first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pinnedOnly, _ := cmd.Flags().GetBool("pinned")
			var (
				notes []models.Note
				err   error
			)
			if pinnedOnly {
				notes, err = a.store.Notes().GetPinned(cmd.Context())
			} else {
				notes, err = a.store.Notes().GetAll(cmd.Context())
			}
			if err != nil {
				return err
			}

			if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
				if notes == nil {
					notes = []models.Note{}
				}
				return writeJSON(cmd.OutOrStdout(), notes)
			}
			renderNotes(cmd, notes)
			return nil
		},
	}
	cmd.Flags().Bool("pinned", false, "Only pinned notes")
	cmd.Flags().Bool("json", false, "JSON output")
	return cmd
}

func renderNotes(cmd *cobra.Command, notes []models.Note) {
	out := cmd.OutOrStdout()
	if len(notes) == 0 {
		fmt.Fprintln(out, "No notes found. Use 'tally note add \"title\"' to write one.")
		return
	}
	for _, n := range notes {
		pin := "  "
		if n.Pinned {
			pin = "📌"
		}
		fmt.Fprintf(out, "%s %s  %s\n", pin, headerStyle.Render(truncate(n.Title, 50)), mutedStyle.Render(n.ID))
		if content := strings.TrimSpace(n.Content); content != "" {
			fmt.Fprintf(out, "   %s\n", truncate(strings.ReplaceAll(content, "\n", " "), 70))
		}
	}
}

func newNotePinCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pin [note-id]",
		Short: "Pin or unpin a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := a.store.Notes().TogglePin(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if note.Pinned {
				fmt.Fprintf(cmd.OutOrStdout(), "📌 Pinned note: %s\n", note.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Unpinned note: %s\n", note.Title)
			}
			return nil
		},
	}
}

func newNoteRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm [note-id]",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.store.Notes().Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🗑️  Deleted note %s\n", args[0])
			return nil
		},
	}
}

func newNoteSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "search [query]",
		Short: "Search notes by title or content",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			notes, err := a.store.Notes().Search(cmd.Context(), query)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🔍 %d result(s) for %q\n", len(notes), query)
			if len(notes) > 0 {
				renderNotes(cmd, notes)
			}
			return nil
		},
	}
}
