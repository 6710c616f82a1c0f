package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
)

// tableBuilder wraps go-pretty/v6 behind the small surface the renderer
// needs. Tables render in a plain ASCII style so they stay readable
// inside transport code fences.
type tableBuilder struct {
	w table.Writer
}

func newTable(title string) *tableBuilder {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	if title != "" {
		w.SetTitle(title)
	}
	return &tableBuilder{w: w}
}

func (t *tableBuilder) header(cols ...string) {
	row := make(table.Row, len(cols))
	for i, c := range cols {
		row[i] = c
	}
	t.w.AppendHeader(row)
}

func (t *tableBuilder) row(vals ...any) {
	row := make(table.Row, len(vals))
	copy(row, vals)
	t.w.AppendRow(row)
}

// maxWidth wraps the content of a 1-based column beyond the given width.
func (t *tableBuilder) maxWidth(col, width int) {
	t.w.SetColumnConfigs([]table.ColumnConfig{{Number: col, WidthMax: width}})
}

// sortDescNumeric orders rows descending by the 1-based column.
func (t *tableBuilder) sortDescNumeric(col int) {
	t.w.SortBy([]table.SortBy{{Number: col, Mode: table.DscNumeric}})
}

func (t *tableBuilder) rows() int {
	return t.w.Length()
}

func (t *tableBuilder) render() string {
	return t.w.Render()
}
