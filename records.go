package socialgraph

import (
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Record is a single result row: a mapping from return-clause alias to a
// normalized value. Graph elements are converted to the package's own Node
// and Relationship value objects at the adapter boundary so that nothing
// above the Runner depends on driver types.
type Record map[string]any

// Result is the fully-buffered outcome of one query execution.
type Result struct {
	Records []Record
	Keys    []string
}

// Node is a detached projection of a graph node.
type Node struct {
	ElementID string
	Labels    []string
	Props     map[string]any
}

// Relationship is a detached projection of a graph relationship.
type Relationship struct {
	ElementID string
	Source    string
	Target    string
	Type      string
	Props     map[string]any
}

// newResult converts raw driver records into the package's Result shape,
// normalizing every value.
func newResult(records []*neo4j.Record) *Result {
	out := &Result{Records: make([]Record, 0, len(records))}
	if len(records) > 0 {
		out.Keys = records[0].Keys
	}
	for _, rec := range records {
		row := make(Record, len(rec.Keys))
		for i, key := range rec.Keys {
			row[key] = normalizeValue(rec.Values[i])
		}
		out.Records = append(out.Records, row)
	}
	return out
}

// normalizeValue rewrites driver-specific values into plain Go values.
// Scalars (string, int64, float64, bool, nil) pass through untouched.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case neo4j.Node:
		return Node{ElementID: t.ElementId, Labels: t.Labels, Props: normalizeProps(t.Props)}
	case neo4j.Relationship:
		return Relationship{
			ElementID: t.ElementId,
			Source:    t.StartElementId,
			Target:    t.EndElementId,
			Type:      t.Type,
			Props:     normalizeProps(t.Props),
		}
	case []any:
		list := make([]any, len(t))
		for i, elem := range t {
			list[i] = normalizeValue(elem)
		}
		return list
	default:
		return v
	}
}

func normalizeProps(props map[string]any) map[string]any {
	out := make(map[string]any, len(props))
	for k, v := range props {
		out[k] = normalizeValue(v)
	}
	return out
}

// single returns the only record of a result, or ErrNotFound for an empty
// result. More than one record for a unique-key lookup indicates corrupted
// data and is reported as such.
func (r *Result) single() (Record, error) {
	switch len(r.Records) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return r.Records[0], nil
	default:
		return nil, fmt.Errorf("expected 1 record but found %d", len(r.Records))
	}
}

// Field extraction helpers. Query mappers use these to reject rows that are
// missing required fields instead of silently zero-filling them.

func stringField(rec Record, key string) (string, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return "", fmt.Errorf("%w: record missing field %q", ErrQuery, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is %T, want string", ErrQuery, key, v)
	}
	return s, nil
}

func intField(rec Record, key string) (int64, error) {
	v, ok := rec[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: record missing field %q", ErrQuery, key)
	}
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	}
	return 0, fmt.Errorf("%w: field %q is %T, want integer", ErrQuery, key, v)
}

// stringSliceField reads a list of strings. A nil value maps to an empty
// slice: collect() over an OPTIONAL MATCH legitimately yields no elements.
func stringSliceField(rec Record, key string) ([]string, error) {
	v, ok := rec[key]
	if !ok {
		return nil, fmt.Errorf("%w: record missing field %q", ErrQuery, key)
	}
	if v == nil {
		return []string{}, nil
	}
	raw, ok := v.([]any)
	if !ok {
		if s, ok := v.([]string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("%w: field %q is %T, want list", ErrQuery, key, v)
	}
	out := make([]string, 0, len(raw))
	for _, elem := range raw {
		s, ok := elem.(string)
		if !ok {
			return nil, fmt.Errorf("%w: field %q has element %T, want string", ErrQuery, key, elem)
		}
		out = append(out, s)
	}
	return out, nil
}
