package main

import "fmt"

type ConfigCmd struct {
	Path bool `help:"Output only the settings file path"`
}

func (cmd *ConfigCmd) Run(g *Globals) error {
	if cmd.Path {
		fmt.Fprintln(g.Out, g.Path)
		return nil
	}

	data, err := g.Settings.Marshal()
	if err != nil {
		return err
	}
	_, err = g.Out.Write(data)
	return err
}
