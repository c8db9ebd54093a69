package render

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
)

const ellipsis = "…"

type LipglossRenderer struct {
	width int
	r     *lipgloss.Renderer

	headingStyle  lipgloss.Style
	typeStyle     lipgloss.Style
	categoryStyle lipgloss.Style
	exampleStyle  lipgloss.Style
	boundsStyle   lipgloss.Style
}

func NewLipglossRenderer(w io.Writer, width int) *LipglossRenderer {
	r := lipgloss.NewRenderer(w)
	return &LipglossRenderer{
		width:         width,
		r:             r,
		headingStyle:  r.NewStyle().Bold(true).Underline(true),
		typeStyle:     r.NewStyle().Bold(true),
		categoryStyle: r.NewStyle().Foreground(lipgloss.Color("12")),
		exampleStyle:  r.NewStyle().Faint(true),
		boundsStyle:   r.NewStyle().Faint(true),
	}
}

func NewLipglossRendererAuto(w io.Writer) *LipglossRenderer {
	width := 80
	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(f.Fd()); err == nil && tw > 0 {
			width = tw
		}
	}
	return NewLipglossRenderer(w, width)
}

func (r *LipglossRenderer) RenderFactoryTable(view FactoryTableView) string {
	if view.IsEmpty() {
		return "No factories registered.\n"
	}

	typeWidth, categoryWidth := len("TYPE"), len("CATEGORY")
	for _, item := range view.Items {
		typeWidth = max(typeWidth, lipgloss.Width(item.Type))
		categoryWidth = max(categoryWidth, lipgloss.Width(item.Category))
	}

	var sb strings.Builder
	sb.WriteString(r.boundsStyle.Render("array length " + view.ArrayLength + ", string length " + view.StringLength))
	sb.WriteString("\n\n")
	sb.WriteString(r.row(r.headingStyle, r.headingStyle, r.headingStyle,
		FactoryItem{Type: "TYPE", Category: "CATEGORY", Example: "EXAMPLE"}, typeWidth, categoryWidth))
	for _, item := range view.Items {
		sb.WriteString(r.row(r.typeStyle, r.categoryStyle, r.exampleStyle, item, typeWidth, categoryWidth))
	}
	return sb.String()
}

func (r *LipglossRenderer) row(ts, cs, es lipgloss.Style, item FactoryItem, typeWidth, categoryWidth int) string {
	typ := ts.Render(item.Type) + strings.Repeat(" ", typeWidth-lipgloss.Width(item.Type)+2)
	category := cs.Render(item.Category) + strings.Repeat(" ", categoryWidth-lipgloss.Width(item.Category)+2)

	room := r.width - typeWidth - categoryWidth - 4
	example := truncate(item.Example, room)
	if example == "" {
		return strings.TrimRight(typ+category, " ") + "\n"
	}
	return typ + category + es.Render(example) + "\n"
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+lipgloss.Width(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + ellipsis
}
