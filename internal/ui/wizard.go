package ui

import (
	"pinto/internal/config"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

const (
	activeSymbol   = "◆"
	completeSymbol = "◇"
	separator      = " · "
	borderTop      = "┌"
	borderSide     = "│"
	borderBottom   = "└"
	checkSymbol    = "✓"
)

func WizardTheme() *huh.Theme {
	t := huh.ThemeBase()
	red := lipgloss.Color("1")
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.SetString("✗").Foreground(red)
	t.Blurred.ErrorMessage = t.Blurred.ErrorMessage.SetString("✗").Foreground(red)
	return t
}

type Field struct {
	Label    string
	Value    string
	Optional bool
}

// SettingsFields lists s the way the init wizard asks for it.
func SettingsFields(s config.Settings) []Field {
	seed := "random"
	if s.Seed != 0 {
		seed = strconv.FormatInt(s.Seed, 10)
	}
	level := s.LogLevel
	if level == "" {
		level = "off"
	}
	fields := []Field{
		{Label: "Seed", Value: seed},
		{Label: "Array length", Value: s.ArrayLength.String()},
		{Label: "String length", Value: s.StringLength.String()},
		{Label: "Log level", Value: level},
	}
	if len(s.SyntheticFields) > 0 {
		fields = append(fields, Field{Label: "Synthetic fields", Value: strings.Join(s.SyntheticFields, ", ")})
	}
	return fields
}

func borderStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
}

func RenderWizard(title string, fields []Field, activeIdx int) string {
	var b strings.Builder
	border := borderStyle()

	line(&b, border.Render(borderTop), title)
	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for i, f := range fields {
		active := i == activeIdx
		if f.Value != "" || active {
			b.WriteString(renderField(f, active))
			b.WriteString("\n")
		}
	}

	if activeIdx >= 0 && activeIdx < len(fields) {
		b.WriteString(border.Render(borderSide))
		b.WriteString("\n")
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")
	return b.String()
}

// RenderSaved summarises settings written to path, one checked line per
// field.
func RenderSaved(path string, fields []Field) string {
	var b strings.Builder
	border := borderStyle()

	line(&b, border.Render(borderTop), activeSymbol+" Saved settings")
	line(&b, border.Render(borderSide), path)
	b.WriteString(border.Render(borderSide))
	b.WriteString("\n")

	for _, f := range fields {
		line(&b, border.Render(borderSide), checkSymbol+" "+f.Label+separator+f.Value)
	}

	b.WriteString(border.Render(borderBottom))
	b.WriteString("\n")
	return b.String()
}

func line(b *strings.Builder, prefix, text string) {
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(text)
	b.WriteString("\n")
}

func renderField(f Field, active bool) string {
	if active {
		label := activeSymbol + " " + f.Label
		if f.Optional {
			label += " (optional)"
		}
		return label
	}
	return completeSymbol + " " + f.Label + separator + f.Value
}
