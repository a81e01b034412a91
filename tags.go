package socialgraph

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// nodeMetadata describes how a Go struct maps onto a graph node: its label,
// its merge key, and the property name of every persisted field. Parsed from
// `crud` struct tags and cached per type, since reflection is not free.
type nodeMetadata struct {
	// Label is the node label, defaulting to the struct type name. A field
	// tag may override it with a "label:<Name>" component.
	Label string
	// KeyField / KeyProp identify the merge key: the struct field carrying
	// the "pk" tag component and its database property name.
	KeyField string
	KeyProp  string
	// Mappings maps struct field names to database property names,
	// including the key field.
	Mappings map[string]string
}

var metaCache sync.Map // reflect.Type -> *nodeMetadata

// metadataForType parses (or retrieves from cache) the persistence metadata
// for a struct type. Fields without a `crud` tag are not persisted.
//
// Tag syntax, comma-separated components:
//
//	pk                 marks the field as the merge key (exactly one required)
//	property:<name>    database property name (required on tagged fields)
//	label:<Name>       overrides the node label (optional, any one field)
func metadataForType(typ reflect.Type) (*nodeMetadata, error) {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not a struct", typ.Name())
	}

	if cached, ok := metaCache.Load(typ); ok {
		return cached.(*nodeMetadata), nil
	}

	meta := &nodeMetadata{
		Label:    typ.Name(),
		Mappings: make(map[string]string),
	}

	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("crud")
		if tag == "" {
			continue
		}

		var isKey bool
		var propName string
		for _, part := range strings.Split(tag, ",") {
			switch {
			case part == "pk":
				isKey = true
			case strings.HasPrefix(part, "property:"):
				propName = strings.TrimPrefix(part, "property:")
			case strings.HasPrefix(part, "label:"):
				meta.Label = strings.TrimPrefix(part, "label:")
			}
		}

		if propName == "" {
			return nil, fmt.Errorf("field %s.%s is missing a 'property' tag component", typ.Name(), field.Name)
		}
		if isKey {
			if meta.KeyField != "" {
				return nil, fmt.Errorf("struct %s declares more than one 'pk' field", typ.Name())
			}
			meta.KeyField = field.Name
			meta.KeyProp = propName
		}
		meta.Mappings[field.Name] = propName
	}

	if meta.KeyField == "" {
		return nil, fmt.Errorf("no merge key ('pk') tag defined for struct %s", typ.Name())
	}

	metaCache.Store(typ, meta)
	return meta, nil
}

// metadataFor is the generic convenience form of metadataForType.
func metadataFor[T any]() (*nodeMetadata, error) {
	var zero T
	return metadataForType(reflect.TypeOf(zero))
}

// keyValue extracts an entity's merge-key value. The entity must be a
// non-nil struct pointer.
func keyValue(entity any) (*nodeMetadata, any, error) {
	val := reflect.ValueOf(entity)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return nil, nil, fmt.Errorf("entity must be a non-nil pointer")
	}
	meta, err := metadataForType(val.Elem().Type())
	if err != nil {
		return nil, nil, err
	}
	return meta, val.Elem().FieldByName(meta.KeyField).Interface(), nil
}
