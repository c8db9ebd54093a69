package main

import (
	"fmt"
	"os"
	"pinto/cmd/pinto/render"
	"pinto/internal/config"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Sample    SampleCmd    `cmd:"" help:"Print values from a built-in factory"`
	Factories FactoriesCmd `cmd:"" aliases:"ls" help:"List the built-in factories"`
	Config    ConfigCmd    `cmd:"" help:"Print the effective settings"`
	Init      InitCmd      `cmd:"" help:"Create or update the settings file interactively"`

	SettingsPath string `name:"settings" short:"s" help:"Path to settings file"`
}

func (c *CLI) AfterApply(ctx *kong.Context) error {
	path := c.SettingsPath
	if path == "" {
		path = config.DefaultPath()
	}
	path, err := config.ExpandPath(path)
	if err != nil {
		return err
	}

	settings, err := config.Resolve(path)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	globals := &Globals{
		Settings: settings,
		Path:     path,
		Out:      os.Stdout,
		Render:   render.NewLipglossRendererAuto(os.Stdout),
		Log:      settings.Logger(os.Stderr),
		RunForm:  runForm,
	}
	ctx.Bind(globals)
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("pinto"),
		kong.Description("Random values and settings for contract checks"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
