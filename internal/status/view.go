package status

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

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n\n")

	b.WriteString(renderConfig(data))
	b.WriteString("\n\n")

	b.WriteString(renderEnvVars(data))
	b.WriteString("\n\n")

	b.WriteString(renderTimers(data))
	b.WriteString("\n\n")

	b.WriteString(renderTrace(data))

	return b.String()
}

func renderHeader(data *Data) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("📂 Current directory: ") + valueStyle.Render(data.CurrentDir) + "\n")
	b.WriteString(titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version))
	return b.String()
}

func renderConfig(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	switch {
	case data.ConfigError != "":
		b.WriteString("   " + keyStyle.Render("File: ") + errorStyle.Render("✗ "+data.ConfigError) + "\n")
	case data.ConfigPath == "":
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render("No configuration file found") + "\n")
	default:
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) + " " + successStyle.Render("✓") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("Prefix: ") + valueStyle.Render(data.Prefix) + "\n")
	if data.All > 0 {
		b.WriteString("   " + keyStyle.Render("All timers: ") + valueStyle.Render(fmt.Sprintf("every %d iterations", data.All)) + "\n")
	}
	b.WriteString("   " + keyStyle.Render("Trace margin: ") + valueStyle.Render(data.Margin.String()))
	if data.LogLevel != "" {
		b.WriteString("\n   " + keyStyle.Render("Log level: ") + valueStyle.Render(data.LogLevel))
	}
	if data.Summary != "" {
		b.WriteString("\n   " + keyStyle.Render("Summary: ") + subtleStyle.Render(truncateString(data.Summary, 50)))
	}

	return b.String()
}

func renderEnvVars(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🌍 Environment variables:") + "\n")

	if len(data.EnvVars) == 0 {
		b.WriteString("   " + subtleStyle.Render(fmt.Sprintf("No %s* variables set", data.Prefix)))
		return b.String()
	}

	for _, v := range data.EnvVars {
		b.WriteString(fmt.Sprintf("   %s=%s\n",
			keyStyle.Render(v.Name),
			valueStyle.Render(truncateString(v.Value, 50))))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func renderTimers(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("⏱️  Timers:") + "\n")

	if len(data.Timers) == 0 {
		b.WriteString("   " + subtleStyle.Render("No timers configured"))
		return b.String()
	}

	width := 0
	for _, t := range data.Timers {
		width = max(width, len(t.Timer))
	}

	for _, t := range data.Timers {
		name := keyStyle.Render(t.Timer + strings.Repeat(" ", width-len(t.Timer)))
		var state string
		if t.Enabled() {
			state = successStyle.Render(fmt.Sprintf("✓ every %d iterations", t.Interval))
		} else {
			state = warningStyle.Render("✗ disabled")
		}
		source := subtleStyle.Render("(" + t.Source.String() + ")")
		if t.Key != "" {
			source = subtleStyle.Render(fmt.Sprintf("(%s: %s)", t.Source, t.Key))
		}
		b.WriteString(fmt.Sprintf("   %s  %s %s\n", name, state, source))
	}

	b.WriteString("   " + subtleStyle.Render(fmt.Sprintf("%d of %d timers recording", data.Enabled(), len(data.Timers))))

	return b.String()
}

func renderTrace(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("🔍 Tracing:") + "\n")

	switch {
	case data.TraceEnabled:
		b.WriteString("   " + successStyle.Render("✓ Writing runtime trace to ") + valueStyle.Render(data.TraceFile))
	case data.TraceFile != "":
		b.WriteString("   " + warningStyle.Render("Trace file set but this binary was built without -tags dev"))
	default:
		b.WriteString("   " + subtleStyle.Render("Disabled"))
	}

	return b.String()
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
