// Package normalize reduces untrusted provider payloads to flat results.
//
// Extraction is all-or-nothing: the first node that does not match the
// expected shape aborts the walk and nothing collected so far is returned.
package normalize

import (
	"fmt"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/wordser/wordser/internal/core"
)

// Reason classifies why a payload was rejected.
type Reason string

const (
	ReasonMalformedPayload     Reason = "malformed_payload"
	ReasonMissingSynonymsField Reason = "missing_synonyms_field"
	ReasonUnexpectedShape      Reason = "unexpected_shape"
	ReasonNoSynonyms           Reason = "no_synonyms"
)

// ShapeError reports the first structural violation found in a payload.
type ShapeError struct {
	Reason Reason
	Path   string
	Detail string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Reason, e.Path, e.Detail)
}

// Unwrap lets callers match any shape failure with errors.Is.
func (e *ShapeError) Unwrap() error {
	return core.ErrUnusablePayload
}

// Synonyms extracts the flattened synonym list from a thesaurus payload of
// the form [{"meta": {"syns": [["a", "b"], ["c"]]}}, ...]. Only the first
// entry is considered. Order and duplicates are preserved.
func Synonyms(raw core.RawPayload) ([]string, error) {
	if !gjson.ValidBytes(raw) {
		return nil, &ShapeError{Reason: ReasonMalformedPayload, Path: rootPath, Detail: "payload is not valid JSON"}
	}
	if !utf8.Valid(raw) {
		return nil, &ShapeError{Reason: ReasonMalformedPayload, Path: rootPath, Detail: "payload is not valid UTF-8"}
	}

	syns, err := walk(cursor{node: gjson.ParseBytes(raw), path: rootPath},
		isArray,
		first,
		isObject,
		field("meta", ReasonUnexpectedShape),
		isObject,
		field("syns", ReasonMissingSynonymsField),
		isArray,
	)
	if err != nil {
		return nil, err
	}

	out := []string{}
	for i, group := range syns.node.Array() {
		groupPath := fmt.Sprintf("%s[%d]", syns.path, i)
		if !group.IsArray() {
			return nil, unexpected(groupPath, "synonym group", group)
		}
		for j, leaf := range group.Array() {
			if leaf.Type != gjson.String {
				return nil, unexpected(fmt.Sprintf("%s[%d]", groupPath, j), "string", leaf)
			}
			out = append(out, leaf.Str)
		}
	}

	if len(out) == 0 {
		return nil, &ShapeError{Reason: ReasonNoSynonyms, Path: syns.path, Detail: "no synonyms listed"}
	}
	return out, nil
}
