// Package cmd implements the CLI application of the trade history
// analyzer.
package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to expose them, and Execute() on the
// user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&serveCmd{}, "dashboard")
	c.Register(&reportCmd{}, "analysis")
}

// printMarkdown renders markdown to the terminal, falling back to the
// raw text when rendering fails.
func printMarkdown(markdown string) {
	out, err := glamour.Render(markdown, "auto")
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
