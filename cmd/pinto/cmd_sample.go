package main

import (
	"fmt"
	"pinto/internal/failure"
)

type SampleCmd struct {
	Type  string `arg:"" help:"Type name as listed by factories, e.g. int or []*string"`
	Count int    `short:"n" default:"5" help:"Number of values to print"`
	Seed  int64  `help:"Seed for the generator (0 uses the settings seed)"`
}

func (cmd *SampleCmd) Run(g *Globals) error {
	if cmd.Count < 1 {
		return failure.Configf("count must be at least 1, got %d", cmd.Count)
	}

	reg := newRegistry(g, cmd.Seed)
	typ, ok := reg.Lookup(cmd.Type)
	if !ok {
		return fmt.Errorf("%w for type %q, see pinto factories", failure.ErrMissingFactory, cmd.Type)
	}

	g.Log.Debug("sampling", "type", typ.String(), "count", cmd.Count, "seed", reg.Source().Seed())
	fmt.Fprintf(g.Out, "# %s, seed %d\n", typ, reg.Source().Seed())
	for range cmd.Count {
		v, err := reg.Next(typ)
		if err != nil {
			return err
		}
		fmt.Fprintln(g.Out, formatValue(v))
	}
	return nil
}
