package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordser/wordser/internal/core"
)

func TestSynonymsFlattensGroupsInOrder(t *testing.T) {
	raw := core.RawPayload(`[{"meta":{"id":"happy","syns":[["happy","glad"],["content"]]}}]`)

	got, err := Synonyms(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"happy", "glad", "content"}, got)
}

func TestSynonymsPreservesDuplicatesAndCase(t *testing.T) {
	raw := core.RawPayload(`[{"meta":{"syns":[["Glad","glad"],["glad"]]}}]`)

	got, err := Synonyms(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"Glad", "glad", "glad"}, got)
}

func TestSynonymsOnlyReadsFirstEntry(t *testing.T) {
	raw := core.RawPayload(`[
		{"meta":{"syns":[["quick"]]}},
		{"meta":{"syns":[["slow"]]}},
		{"meta":"ignored"}
	]`)

	got, err := Synonyms(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"quick"}, got)
}

func TestSynonymsIsDeterministic(t *testing.T) {
	raw := core.RawPayload(`[{"meta":{"syns":[["a","b"],["c","a"]]}}]`)

	first, err := Synonyms(raw)
	require.NoError(t, err)
	second, err := Synonyms(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSynonymsRejections(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		reason Reason
		path   string
	}{
		{name: "empty top level", raw: `[]`, reason: ReasonMalformedPayload, path: "$"},
		{name: "invalid json", raw: `[{"meta":`, reason: ReasonMalformedPayload, path: "$"},
		{name: "empty body", raw: ``, reason: ReasonMalformedPayload, path: "$"},
		{name: "top level object", raw: `{"meta":{"syns":[["a"]]}}`, reason: ReasonUnexpectedShape, path: "$"},
		// The thesaurus answers unknown words with a list of spelling suggestions.
		{name: "suggestion list", raw: `["hapy","happy"]`, reason: ReasonUnexpectedShape, path: "$[0]"},
		{name: "missing meta", raw: `[{"hwi":{}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta"},
		{name: "meta not object", raw: `[{"meta":[1]}]`, reason: ReasonUnexpectedShape, path: "$[0].meta"},
		{name: "missing syns", raw: `[{"meta":{}}]`, reason: ReasonMissingSynonymsField, path: "$[0].meta.syns"},
		{name: "syns not array", raw: `[{"meta":{"syns":"glad"}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta.syns"},
		{name: "group not array", raw: `[{"meta":{"syns":[["glad"],"content"]}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta.syns[1]"},
		{name: "leaf not string", raw: `[{"meta":{"syns":[["glad",7]]}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta.syns[0][1]"},
		{name: "null leaf", raw: `[{"meta":{"syns":[["glad"],[null]]}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta.syns[1][0]"},
		{name: "no groups", raw: `[{"meta":{"syns":[]}}]`, reason: ReasonNoSynonyms, path: "$[0].meta.syns"},
		{name: "empty groups", raw: `[{"meta":{"syns":[[],[]]}}]`, reason: ReasonNoSynonyms, path: "$[0].meta.syns"},
		{name: "duplicate syns", raw: `[{"meta":{"syns":[["a"]],"syns":7}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta.syns"},
		{name: "duplicate meta", raw: `[{"meta":{"syns":[["a"]]},"meta":{}}]`, reason: ReasonUnexpectedShape, path: "$[0].meta"},
		{name: "invalid utf-8", raw: "[{\"meta\":{\"syns\":[[\"a\xff\"]]}}]", reason: ReasonMalformedPayload, path: "$"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Synonyms(core.RawPayload(tt.raw))
			require.Error(t, err)
			assert.Nil(t, got, "no partial result may be returned")

			var shapeErr *ShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.reason, shapeErr.Reason)
			assert.Equal(t, tt.path, shapeErr.Path)
			assert.ErrorIs(t, err, core.ErrUnusablePayload)
		})
	}
}

func TestSynonymsLateViolationDiscardsCollected(t *testing.T) {
	raw := core.RawPayload(`[{"meta":{"syns":[["a","b","c"],["d"],["e",{"x":1}]]}}]`)

	got, err := Synonyms(raw)
	require.Error(t, err)
	assert.Nil(t, got)
}
