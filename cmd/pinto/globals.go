package main

import (
	"io"
	"log/slog"
	"pinto/cmd/pinto/render"
	"pinto/internal/config"
	"pinto/internal/ui"

	"github.com/charmbracelet/huh"
)

type Globals struct {
	Settings config.Settings
	Path     string
	Out      io.Writer
	Render   render.Renderer
	Log      *slog.Logger
	RunForm  func(form *huh.Form) error
}

func runForm(form *huh.Form) error {
	return form.WithTheme(ui.WizardTheme()).Run()
}
