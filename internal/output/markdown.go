package output

import (
	"fmt"
	"strings"
)

// MarkdownFormatter renders results as a markdown table.
type MarkdownFormatter struct{}

// FormatReport renders a report as Markdown.
func (f *MarkdownFormatter) FormatReport(report *Report) (string, error) {
	if report == nil {
		return "", nil
	}

	header, rows := tabulate(report.Result)

	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s: %s\n\n", report.Kind, escapeMarkdownCell(report.Term))
	writeMarkdownRow(&sb, header)

	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeMarkdownRow(&sb, sep)

	for _, row := range rows {
		writeMarkdownRow(&sb, row)
	}

	fmt.Fprintf(&sb, "\n**Status**: %s\n", statusLine(report))
	return sb.String(), nil
}

func writeMarkdownRow(sb *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeMarkdownCell(c)
	}
	sb.WriteString("| " + strings.Join(escaped, " | ") + " |\n")
}

func escapeMarkdownCell(value string) string {
	value = strings.ReplaceAll(value, "|", "\\|")
	value = strings.ReplaceAll(value, "\r\n", " ")
	return strings.ReplaceAll(value, "\n", " ")
}
