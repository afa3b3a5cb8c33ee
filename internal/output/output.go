// Package output renders lookup results for the CLI.
package output

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/wordser/wordser/internal/core"
)

// Format represents an output format.
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// Report is one settled lookup as shown to a CLI user.
type Report struct {
	Kind   core.Kind
	Term   string
	Status int
	Result core.Result
}

// NewReport builds a Report from a settled outcome.
func NewReport[T core.Result](kind core.Kind, term string, outcome core.Outcome[T]) *Report {
	return &Report{Kind: kind, Term: term, Status: outcome.Status, Result: outcome.Result}
}

// OK reports whether the lookup succeeded.
func (r *Report) OK() bool {
	return r != nil && r.Status == http.StatusOK
}

// Formatter renders a report.
type Formatter interface {
	FormatReport(report *Report) (string, error)
}

// ParseFormat validates and normalizes a format string.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatMarkdown), "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	case FormatMarkdown:
		return &MarkdownFormatter{}
	default:
		return &TableFormatter{}
	}
}

// tabulate flattens a result into a header and rows shared by the table
// and markdown renderers.
func tabulate(result core.Result) ([]string, [][]string) {
	switch v := result.(type) {
	case core.Synonyms:
		rows := make([][]string, 0, len(v.Synonyms))
		for i, s := range v.Synonyms {
			rows = append(rows, []string{strconv.Itoa(i + 1), s})
		}
		return []string{"#", "Synonym"}, rows
	case core.Summary:
		return []string{"Summary"}, [][]string{{v.Summary}}
	case core.Sentiment:
		return []string{"Polarity", "Score"}, [][]string{{string(v.Polarity), formatScore(v.Score)}}
	case core.Keywords:
		rows := make([][]string, 0, len(v.Keywords))
		for _, k := range v.Keywords {
			rows = append(rows, []string{k.Text, formatScore(k.Score)})
		}
		return []string{"Keyword", "Score"}, rows
	case core.EchoMessage:
		return []string{"Text"}, [][]string{{v.Text}}
	default:
		return []string{"Result"}, [][]string{{fmt.Sprintf("%v", v)}}
	}
}

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}

func statusLine(report *Report) string {
	if report.OK() {
		return fmt.Sprintf("%s: ok", report.Kind)
	}
	return fmt.Sprintf("%s: failed (%d %s)", report.Kind, report.Status, http.StatusText(report.Status))
}
