package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// levelColors maps semantic levels to their terminal colors.
// The color package degrades to plain text when stdout is not a TTY.
var levelColors = map[string]*color.Color{
	"INFO":    color.New(color.FgCyan),
	"SUCCESS": color.New(color.FgGreen),
	"WARN":    color.New(color.FgYellow),
	"ERROR":   color.New(color.FgRed),
}

// Decorate returns the message prefixed with a colored level tag.
// It is a pure formatting function - all the Print helpers below go
// through it so status lines look the same everywhere.
func Decorate(level, msg string) string {
	c, ok := levelColors[level]
	if !ok {
		return fmt.Sprintf("[%s] %s", level, msg)
	}
	return c.Sprintf("[%s]", level) + " " + msg
}

// PrintInfo prints an info message to stdout
func PrintInfo(msg string) {
	fmt.Println(Decorate("INFO", msg))
}

// PrintSuccess prints a success message to stdout
func PrintSuccess(msg string) {
	fmt.Println(Decorate("SUCCESS", msg))
}

// PrintWarning prints a warning message to stderr
func PrintWarning(msg string) {
	fmt.Fprintln(os.Stderr, Decorate("WARN", msg))
}

// PrintError prints an error message to stderr
// This is called from main.go for consistent error formatting
func PrintError(err error) {
	fmt.Fprintln(os.Stderr, Decorate("ERROR", err.Error()))
}
