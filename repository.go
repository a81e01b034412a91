package socialgraph

import (
	"context"
	"fmt"
	"reflect"

	"github.com/saulfrancisco-ruizacevedo/gocypher"
)

// Repository provides idempotent merge-by-key persistence for any struct
// type T whose `crud` tags declare a merge key. It implements the generic
// "upsert catalog entity" contract: Save merges on the key property and
// overwrites every other tagged field, so calling it twice with identical
// input yields one node in the same final state.
type Repository[T any] struct {
	runner Runner
	meta   *nodeMetadata
}

// NewRepository parses T's `crud` tags and returns a repository bound to the
// given runner.
func NewRepository[T any](runner Runner) (*Repository[T], error) {
	meta, err := metadataFor[T]()
	if err != nil {
		return nil, err
	}
	return &Repository[T]{runner: runner, meta: meta}, nil
}

// Save creates the node if absent and updates it otherwise, keyed on the
// `pk` property. The merge key itself is never rewritten; all other tagged
// fields are overwritten with the entity's current values.
func (r *Repository[T]) Save(ctx context.Context, entity *T) error {
	val := reflect.ValueOf(entity).Elem()
	mergeProps := map[string]interface{}{
		r.meta.KeyProp: val.FieldByName(r.meta.KeyField).Interface(),
	}

	setProps := make(map[string]interface{})
	for fieldName, propName := range r.meta.Mappings {
		if fieldName == r.meta.KeyField {
			continue
		}
		setProps["n."+propName] = val.FieldByName(fieldName).Interface()
	}

	qb := gocypher.NewQueryBuilder().
		Merge(gocypher.N("n", r.meta.Label).WithProperties(mergeProps))
	if len(setProps) > 0 {
		qb = qb.Set(setProps)
	}
	qb = qb.Return("n")

	query, params, err := qb.Build()
	if err != nil {
		return err
	}
	_, err = r.runner.Run(ctx, query, params)
	return err
}

// FindByKey retrieves the entity with the given merge-key value, or
// ErrNotFound if no node matches.
func (r *Repository[T]) FindByKey(ctx context.Context, key any) (*T, error) {
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("n", r.meta.Label).WithProperties(map[string]interface{}{r.meta.KeyProp: key})).
		Return("n").
		Build()
	if err != nil {
		return nil, err
	}

	result, err := r.runner.Run(ctx, query, params)
	if err != nil {
		return nil, err
	}

	rec, err := result.single()
	if err != nil {
		return nil, err
	}

	value, ok := rec["n"]
	if !ok {
		return nil, fmt.Errorf("%w: return value 'n' missing from result", ErrQuery)
	}
	node, ok := value.(Node)
	if !ok {
		return nil, fmt.Errorf("%w: return value 'n' is %T, want node", ErrQuery, value)
	}

	entity := new(T)
	if err := decodeNode(node, entity, r.meta); err != nil {
		return nil, err
	}
	return entity, nil
}

// Delete removes the node with the given merge-key value along with any
// relationships attached to it. Deleting an absent node is a no-op.
func (r *Repository[T]) Delete(ctx context.Context, key any) error {
	query, params, err := gocypher.NewQueryBuilder().
		Match(gocypher.N("n", r.meta.Label).WithProperties(map[string]interface{}{r.meta.KeyProp: key})).
		DetachDelete("n").
		Build()
	if err != nil {
		return err
	}
	_, err = r.runner.Run(ctx, query, params)
	return err
}

// decodeNode populates a struct from a node's properties using the parsed
// metadata. Properties missing on the node leave the field at its zero
// value; numeric widths are converted where assignment would not match.
func decodeNode(node Node, entity any, meta *nodeMetadata) error {
	val := reflect.ValueOf(entity).Elem()

	for fieldName, propName := range meta.Mappings {
		field := val.FieldByName(fieldName)
		if !field.IsValid() || !field.CanSet() {
			continue
		}
		propValue, ok := node.Props[propName]
		if !ok || propValue == nil {
			continue
		}

		pv := reflect.ValueOf(propValue)
		switch {
		case pv.Type().AssignableTo(field.Type()):
			field.Set(pv)
		case isNumericKind(pv.Kind()) && isNumericKind(field.Kind()):
			field.Set(pv.Convert(field.Type()))
		default:
			return fmt.Errorf("%w: property %q is %T, cannot decode into %s.%s",
				ErrQuery, propName, propValue, meta.Label, fieldName)
		}
	}
	return nil
}

func isNumericKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
