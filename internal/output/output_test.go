package output

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordser/wordser/internal/core"
)

func TestParseFormat(t *testing.T) {
	format, err := ParseFormat("table")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	format, err = ParseFormat("JSON")
	require.NoError(t, err)
	require.Equal(t, FormatJSON, format)

	format, err = ParseFormat("md")
	require.NoError(t, err)
	require.Equal(t, FormatMarkdown, format)

	format, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, FormatTable, format)

	_, err = ParseFormat("csv")
	require.Error(t, err)
}

func synonymsReport() *Report {
	outcome := core.Settle(core.Synonyms{Synonyms: []string{"happy", "glad"}}, nil, core.EmptySynonyms)
	return NewReport(core.KindSynonyms, "joyful", outcome)
}

func TestJSONMatchesHTTPBody(t *testing.T) {
	rendered, err := (&JSONFormatter{}).FormatReport(synonymsReport())
	require.NoError(t, err)
	assert.JSONEq(t, `{"synonymns":["happy","glad"]}`, rendered)

	failed := NewReport(core.KindSentiment, "meh", core.Settle(core.Sentiment{}, errors.New("boom"), core.EmptySentiment))
	rendered, err = (&JSONFormatter{Indent: true}).FormatReport(failed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"polarity":"Unavailable","score":0}`, rendered)
	assert.False(t, failed.OK())
	assert.Equal(t, http.StatusInternalServerError, failed.Status)
}

func TestTableFormatter(t *testing.T) {
	rendered, err := (&TableFormatter{}).FormatReport(synonymsReport())
	require.NoError(t, err)

	assert.Contains(t, rendered, "joyful")
	assert.Contains(t, rendered, "SYNONYM")
	assert.Contains(t, rendered, "happy")
	assert.Contains(t, rendered, "glad")
	assert.Contains(t, rendered, "synonyms: ok")
}

func TestMarkdownFormatter(t *testing.T) {
	outcome := core.Settle(core.Keywords{Keywords: []core.Keyword{
		{Text: "channels", Score: 1},
		{Text: "pipe|line", Score: 0.5},
	}}, nil, core.EmptyKeywords)

	rendered, err := (&MarkdownFormatter{}).FormatReport(NewReport(core.KindKeywords, "go text", outcome))
	require.NoError(t, err)

	lines := strings.Split(rendered, "\n")
	assert.Equal(t, "## keywords: go text", lines[0])
	assert.Equal(t, "| Keyword | Score |", lines[2])
	assert.Equal(t, "| --- | --- |", lines[3])
	assert.Equal(t, "| channels | 1 |", lines[4])
	assert.Equal(t, `| pipe\|line | 0.5 |`, lines[5])
	assert.Contains(t, rendered, "**Status**: keywords: ok")
}

func TestFailedReportStatusLine(t *testing.T) {
	outcome := core.Settle(core.Summary{}, core.ErrInvalidRequest, core.EmptySummary)
	report := NewReport(core.KindSummary, "", outcome)

	assert.Equal(t, "summary: failed (400 Bad Request)", statusLine(report))
}

func TestNilReport(t *testing.T) {
	for _, format := range []Format{FormatTable, FormatJSON, FormatMarkdown} {
		rendered, err := NewFormatter(format).FormatReport(nil)
		require.NoError(t, err)
		assert.Empty(t, rendered)
	}
}
