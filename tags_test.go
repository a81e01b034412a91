package socialgraph

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForType(t *testing.T) {
	meta, err := metadataFor[User]()
	require.NoError(t, err)

	assert.Equal(t, "User", meta.Label)
	assert.Equal(t, "Email", meta.KeyField)
	assert.Equal(t, "email", meta.KeyProp)
	assert.Equal(t, map[string]string{
		"ID":           "id",
		"Name":         "name",
		"Email":        "email",
		"RegisteredAt": "registeredAt",
	}, meta.Mappings)
}

func TestMetadataForType_LabelOverride(t *testing.T) {
	type Product struct {
		Code string `crud:"pk,property:code,label:CatalogItem"`
		Name string `crud:"property:name"`
	}

	meta, err := metadataFor[Product]()
	require.NoError(t, err)
	assert.Equal(t, "CatalogItem", meta.Label)
	assert.Equal(t, "Code", meta.KeyField)
	assert.Equal(t, "code", meta.KeyProp)
}

func TestMetadataForType_UntaggedFieldsSkipped(t *testing.T) {
	type Entity struct {
		Key      string `crud:"pk,property:key"`
		Internal string
	}

	meta, err := metadataFor[Entity]()
	require.NoError(t, err)
	assert.NotContains(t, meta.Mappings, "Internal")
}

func TestMetadataForType_Errors(t *testing.T) {
	t.Run("missing property component", func(t *testing.T) {
		type Broken struct {
			Key string `crud:"pk"`
		}
		_, err := metadataFor[Broken]()
		assert.ErrorContains(t, err, "property")
	})

	t.Run("no merge key", func(t *testing.T) {
		type Broken struct {
			Name string `crud:"property:name"`
		}
		_, err := metadataFor[Broken]()
		assert.ErrorContains(t, err, "pk")
	})

	t.Run("two merge keys", func(t *testing.T) {
		type Broken struct {
			A string `crud:"pk,property:a"`
			B string `crud:"pk,property:b"`
		}
		_, err := metadataFor[Broken]()
		assert.ErrorContains(t, err, "more than one")
	})

	t.Run("not a struct", func(t *testing.T) {
		_, err := metadataForType(reflect.TypeOf("plain string"))
		assert.Error(t, err)
	})
}

func TestMetadataForType_Cached(t *testing.T) {
	first, err := metadataFor[Post]()
	require.NoError(t, err)
	second, err := metadataFor[Post]()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestKeyValue(t *testing.T) {
	meta, key, err := keyValue(&User{Email: "ada@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "User", meta.Label)
	assert.Equal(t, "ada@example.com", key)

	_, _, err = keyValue(User{Email: "ada@example.com"})
	assert.ErrorContains(t, err, "pointer")

	var nilUser *User
	_, _, err = keyValue(nilUser)
	assert.ErrorContains(t, err, "pointer")
}
