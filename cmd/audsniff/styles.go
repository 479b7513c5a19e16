// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	primaryColor = lipgloss.Color("#5F87FF")
	accentColor  = lipgloss.Color("#00AFAF")
	successColor = lipgloss.Color("#00AA00")
	errorColor   = lipgloss.Color("#D70000")
	mutedColor   = lipgloss.Color("#888888")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true)

	fileStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(errorColor)
)

// styledHelp prints a title line above kong's own help.
func styledHelp(options kong.HelpOptions, ctx *kong.Context) error {
	fmt.Fprintln(ctx.Stdout, titleStyle.Render("audsniff"))
	fmt.Fprintln(ctx.Stdout, subtitleStyle.Render(description))
	fmt.Fprintln(ctx.Stdout)
	return kong.DefaultHelpPrinter(options, ctx)
}

func printFile(w io.Writer, name string) {
	fmt.Fprintln(w, fileStyle.Render(name))
}

func printInfo(w io.Writer, key, value string) {
	fmt.Fprintf(w, "  %s %s\n", keyStyle.Render(key+":"), valueStyle.Render(value))
}

func printSuccess(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", successStyle.Render("✓"), message)
}

func printError(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", errorStyle.Render("Error:"), message)
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", d.Seconds()*1000)
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
