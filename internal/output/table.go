package output

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// TableFormatter renders results as an ASCII table.
type TableFormatter struct{}

// FormatReport renders a report as a table with a status footer.
func (f *TableFormatter) FormatReport(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	header, rows := tabulate(report.Result)

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetTitle(report.Term)
	t.Style().Title.Align = text.AlignLeft
	t.Style().Title.Format = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	t.AppendHeader(toRow(header))
	for _, row := range rows {
		t.AppendRow(toRow(row))
	}

	footer := make([]string, len(header))
	footer[len(footer)-1] = statusLine(report)
	t.AppendFooter(toRow(footer))

	return t.Render(), nil
}

func toRow(cells []string) table.Row {
	row := make(table.Row, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
