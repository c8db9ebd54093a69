package main

import (
	"fmt"
	"pinto/cmd/pinto/render"
)

type FactoriesCmd struct {
	Names bool `short:"n" help:"Output only type names (one per line)"`
}

func (cmd *FactoriesCmd) Run(g *Globals) error {
	reg := newRegistry(g, 0)
	entries := reg.Entries()

	if cmd.Names {
		for _, e := range entries {
			fmt.Fprintln(g.Out, e.Type)
		}
		return nil
	}

	view := render.FactoryTableView{
		ArrayLength:  g.Settings.ArrayLength.String(),
		StringLength: g.Settings.StringLength.String(),
		Items:        make([]render.FactoryItem, 0, len(entries)),
	}
	for _, e := range entries {
		item := render.FactoryItem{Type: e.Type, Category: e.Category.String()}
		if typ, ok := reg.Lookup(e.Type); ok {
			if v, err := reg.Next(typ); err == nil {
				item.Example = formatValue(v)
			}
		}
		view.Items = append(view.Items, item)
	}

	fmt.Fprint(g.Out, g.Render.RenderFactoryTable(view))
	return nil
}
