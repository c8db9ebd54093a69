package main

import (
	"errors"
	"fmt"
	"pinto/internal/config"
	"pinto/internal/ui"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
)

type InitCmd struct{}

type settingsForm struct {
	seed      string
	arrayMin  string
	arrayMax  string
	stringMin string
	stringMax string
	level     string
}

func newSettingsForm(s config.Settings) *settingsForm {
	level := s.LogLevel
	if level == "" {
		level = "off"
	}
	return &settingsForm{
		seed:      strconv.FormatInt(s.Seed, 10),
		arrayMin:  strconv.Itoa(s.ArrayLength.Min),
		arrayMax:  strconv.Itoa(s.ArrayLength.Max),
		stringMin: strconv.Itoa(s.StringLength.Min),
		stringMax: strconv.Itoa(s.StringLength.Max),
		level:     level,
	}
}

func validateSeed(s string) error {
	if _, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64); err != nil {
		return errors.New("Seed must be a whole number, 0 for random")
	}
	return nil
}

func validateLength(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return errors.New("Length must be a whole number of at least 1")
	}
	return nil
}

func (f *settingsForm) form() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Seed").
				Description("0 picks a new seed on every run").
				Value(&f.seed).
				Validate(validateSeed),
		),
		huh.NewGroup(
			huh.NewInput().Title("Shortest array").Value(&f.arrayMin).Validate(validateLength),
			huh.NewInput().Title("Longest array").Value(&f.arrayMax).Validate(validateLength),
		),
		huh.NewGroup(
			huh.NewInput().Title("Shortest string").Value(&f.stringMin).Validate(validateLength),
			huh.NewInput().Title("Longest string").Value(&f.stringMax).Validate(validateLength),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("off", "debug", "info", "warn", "error")...).
				Value(&f.level),
		),
	)
}

// apply copies the answers onto base, keeping fields the form does not ask
// about.
func (f *settingsForm) apply(base config.Settings) (config.Settings, error) {
	s := base
	var err error
	if s.Seed, err = strconv.ParseInt(strings.TrimSpace(f.seed), 10, 64); err != nil {
		return base, fmt.Errorf("seed: %w", err)
	}
	bounds := []struct {
		field *int
		value string
	}{
		{&s.ArrayLength.Min, f.arrayMin},
		{&s.ArrayLength.Max, f.arrayMax},
		{&s.StringLength.Min, f.stringMin},
		{&s.StringLength.Max, f.stringMax},
	}
	for _, b := range bounds {
		if *b.field, err = strconv.Atoi(strings.TrimSpace(b.value)); err != nil {
			return base, fmt.Errorf("length: %w", err)
		}
	}
	s.LogLevel = f.level
	if s.LogLevel == "off" {
		s.LogLevel = ""
	}
	return s, s.Validate()
}

func (cmd *InitCmd) Run(g *Globals) error {
	base, err := config.Load(g.Path)
	if err != nil {
		return err
	}
	answers := newSettingsForm(base)
	if err := g.RunForm(answers.form()); err != nil {
		return handleFormError(err)
	}

	s, err := answers.apply(base)
	if err != nil {
		return err
	}
	if err := s.Save(g.Path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	g.Settings = s

	fmt.Fprint(g.Out, ui.RenderSaved(g.Path, ui.SettingsFields(s)))
	return nil
}

func handleFormError(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}
