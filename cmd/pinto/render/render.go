package render

type Renderer interface {
	RenderFactoryTable(view FactoryTableView) string
}

type FactoryTableView struct {
	ArrayLength  string
	StringLength string
	Items        []FactoryItem
}

type FactoryItem struct {
	Type     string
	Category string
	Example  string
}

func (v FactoryTableView) IsEmpty() bool {
	return len(v.Items) == 0
}
