package commands

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/spf13/cobra"

	apperrors "github.com/balkashynov/tally/internal/errors"
)

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// joinArgs builds a title or name from positional args and rejects blanks
func joinArgs(field string, args []string) (string, error) {
	value := strings.TrimSpace(strings.Join(args, " "))
	if value == "" {
		return "", apperrors.Validation(field, "must not be blank")
	}
	return value, nil
}

// changedString returns a pointer to a string flag's value when it was set
func changedString(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// changedInt returns a pointer to an int flag's value when it was set
func changedInt(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetInt(name)
	return &v
}
