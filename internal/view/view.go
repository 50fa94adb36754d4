package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	kindStyles = map[string]lipgloss.Style{
		"static": lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"http":   lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
		"exec":   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"none":   subtleStyle,
	}
)

const maxDetailLen = 60

// Render renders the command table to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n\n")

	b.WriteString(renderFiles(data))
	b.WriteString("\n\n")

	b.WriteString(renderCommands(data))
	b.WriteString("\n")

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version) + "\n")
	b.WriteString(titleStyle.Render("🐚 Shell: ") + valueStyle.Render(data.Shell) + "\n")
	b.WriteString(titleStyle.Render("⏱  Lookup timeout: ") + valueStyle.Render(data.Timeout.String()))
	if c := data.Cache; c != nil {
		stats := fmt.Sprintf("%d entries", c.Entries)
		if c.Stale > 0 {
			stats += fmt.Sprintf(", %d stale", c.Stale)
		}
		stats += ", " + formatBytes(c.Size)
		b.WriteString("\n" + titleStyle.Render("💾 Cache: ") + valueStyle.Render(c.Path) + subtleStyle.Render(" ("+stats+")"))
	}
	return b.String()
}

func renderFiles(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Command tables:") + "\n")

	for i, path := range data.Files {
		b.WriteString(fmt.Sprintf("   %d. %s\n", i+1, subtleStyle.Render(path)))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderCommands(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("⌨️  Commands (%d):", len(data.Commands))) + "\n")

	if len(data.Commands) == 0 {
		b.WriteString("   " + subtleStyle.Render("No commands"))
		return b.String()
	}

	for _, cmd := range data.Commands {
		b.WriteString("   " + valueStyle.Render(cmd.Name))
		if cmd.Description != "" {
			b.WriteString(" " + subtleStyle.Render(cmd.Description))
		}
		b.WriteString("\n")

		for _, opt := range cmd.Options {
			kind, ok := kindStyles[opt.Kind]
			if !ok {
				kind = subtleStyle
			}

			line := fmt.Sprintf("      %s %s", keyStyle.Render(opt.Name), kind.Render("["+opt.Kind+"]"))
			if opt.Detail != "" {
				line += " " + subtleStyle.Render(truncateString(opt.Detail, maxDetailLen))
			}
			if opt.Quote {
				line += " " + subtleStyle.Render("(quoted)")
			}
			if opt.Cache > 0 {
				line += " " + subtleStyle.Render("(cached "+opt.Cache.String()+")")
			}
			b.WriteString(line + "\n")
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
