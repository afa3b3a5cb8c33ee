package normalize

import (
	"fmt"

	"github.com/tidwall/gjson"
)

const rootPath = "$"

// cursor is a node together with the path that reached it, for error reports.
type cursor struct {
	node gjson.Result
	path string
}

// step validates or descends one level. Steps run left to right and the
// first error stops the walk.
type step func(cursor) (cursor, error)

func walk(c cursor, steps ...step) (cursor, error) {
	for _, s := range steps {
		next, err := s(c)
		if err != nil {
			return cursor{}, err
		}
		c = next
	}
	return c, nil
}

func isArray(c cursor) (cursor, error) {
	if !c.node.IsArray() {
		return cursor{}, unexpected(c.path, "array", c.node)
	}
	return c, nil
}

func isObject(c cursor) (cursor, error) {
	if !c.node.IsObject() {
		return cursor{}, unexpected(c.path, "object", c.node)
	}
	return c, nil
}

// first selects element 0 of an array. An empty array is a malformed payload.
func first(c cursor) (cursor, error) {
	elems := c.node.Array()
	if len(elems) == 0 {
		return cursor{}, &ShapeError{Reason: ReasonMalformedPayload, Path: c.path, Detail: "empty array"}
	}
	return cursor{node: elems[0], path: c.path + "[0]"}, nil
}

// field selects a key of an object, failing with missing when it is absent.
// A key that appears more than once is ambiguous and rejected.
func field(name string, missing Reason) step {
	return func(c cursor) (cursor, error) {
		path := c.path + "." + name

		var (
			value   gjson.Result
			matches int
		)
		c.node.ForEach(func(key, v gjson.Result) bool {
			if key.String() == name {
				matches++
				value = v
			}
			return true
		})

		switch matches {
		case 0:
			return cursor{}, &ShapeError{Reason: missing, Path: path, Detail: "field not present"}
		case 1:
			return cursor{node: value, path: path}, nil
		default:
			return cursor{}, &ShapeError{Reason: ReasonUnexpectedShape, Path: path, Detail: "duplicate field"}
		}
	}
}

func unexpected(path, want string, got gjson.Result) *ShapeError {
	return &ShapeError{
		Reason: ReasonUnexpectedShape,
		Path:   path,
		Detail: fmt.Sprintf("expected %s, got %s", want, describe(got)),
	}
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsObject():
		return "object"
	case r.Type == gjson.String:
		return "string"
	case r.Type == gjson.Number:
		return "number"
	case r.Type == gjson.True, r.Type == gjson.False:
		return "bool"
	default:
		return "null"
	}
}
