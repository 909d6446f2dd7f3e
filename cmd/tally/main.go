package main

import (
	"github.com/balkashynov/tally/internal/commands"
	"github.com/balkashynov/tally/internal/errors"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersion(version, commit, date)
	errors.Fatal(commands.Execute())
}
