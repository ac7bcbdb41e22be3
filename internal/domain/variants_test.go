package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariants_ZeroValueIsAbsent(t *testing.T) {
	var v Variants
	assert.Equal(t, VariantsAbsent, v.Kind())
	assert.True(t, v.IsZero())
	assert.Nil(t, v.List())
}

func TestStructuredVariants_List(t *testing.T) {
	v := StructuredVariants([]Variant{{Name: "Size", Options: []string{"S", "M", "L"}}})
	assert.Equal(t, VariantsStructured, v.Kind())

	list := v.List()
	require.Len(t, list, 1)
	assert.Equal(t, "Size", list[0].Name)
	assert.Equal(t, []string{"S", "M", "L"}, list[0].Options)
}

func TestStructuredVariants_EmptyIsAbsent(t *testing.T) {
	assert.True(t, StructuredVariants(nil).IsZero())
	assert.True(t, StructuredVariants([]Variant{}).IsZero())
}

func TestRawVariants_ParseableTextPromotes(t *testing.T) {
	v := RawVariants(`[{"name":"Size","options":["S","M"]}]`)
	assert.Equal(t, VariantsStructured, v.Kind())
	require.Len(t, v.List(), 1)
	assert.Equal(t, "Size", v.List()[0].Name)
}

func TestRawVariants_OpaqueTextStaysRaw(t *testing.T) {
	v := RawVariants(`{"color":"red"}`)
	assert.Equal(t, VariantsRaw, v.Kind())
	assert.Nil(t, v.List())
}

func TestRawVariants_EmptyIsAbsent(t *testing.T) {
	assert.True(t, RawVariants("").IsZero())
	assert.True(t, RawVariants("  ").IsZero())
	assert.True(t, RawVariants("null").IsZero())
}

func TestVariants_StoreRoundTrip_Structured(t *testing.T) {
	v := StructuredVariants([]Variant{{Name: "Color", Options: []string{"Blue"}}})

	stored, err := v.StoreValue()
	require.NoError(t, err)
	require.NotNil(t, stored)

	restored := VariantsFromStore(stored)
	assert.Equal(t, VariantsStructured, restored.Kind())
	assert.Equal(t, v.List(), restored.List())
}

func TestVariants_StoreRoundTrip_Opaque(t *testing.T) {
	v := RawVariants(`{"anything":"goes"}`)

	stored, err := v.StoreValue()
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.JSONEq(t, `{"anything":"goes"}`, *stored)

	restored := VariantsFromStore(stored)
	assert.Equal(t, VariantsRaw, restored.Kind())
}

func TestVariants_StoreValue_AbsentIsNull(t *testing.T) {
	stored, err := NoVariants().StoreValue()
	require.NoError(t, err)
	assert.Nil(t, stored)

	assert.True(t, VariantsFromStore(nil).IsZero())
}

func TestVariants_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    Variants
		want string
	}{
		{"absent", NoVariants(), `null`},
		{"structured", StructuredVariants([]Variant{{Name: "Size", Options: []string{"M"}}}), `[{"name":"Size","options":["M"]}]`},
		{"opaque json", RawVariants(`{"color":"red"}`), `{"color":"red"}`},
		{"plain text", Variants{kind: VariantsRaw, raw: "one size"}, `"one size"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(b))
		})
	}
}

func TestVariants_UnmarshalJSON_List(t *testing.T) {
	var v Variants
	require.NoError(t, json.Unmarshal([]byte(`[{"name":"Size","options":["S","M","L"]}]`), &v))
	assert.Equal(t, VariantsStructured, v.Kind())
	require.Len(t, v.List(), 1)
}

func TestVariants_UnmarshalJSON_Null(t *testing.T) {
	var v Variants
	require.NoError(t, json.Unmarshal([]byte(`null`), &v))
	assert.True(t, v.IsZero())
}

func TestVariants_UnmarshalJSON_SerializedString(t *testing.T) {
	// A client may submit the serialized form as a string.
	var v Variants
	require.NoError(t, json.Unmarshal([]byte(`"[{\"name\":\"Size\",\"options\":[\"S\"]}]"`), &v))
	assert.Equal(t, VariantsStructured, v.Kind())
}

func TestVariants_UnmarshalJSON_ArbitraryValueKeptOpaque(t *testing.T) {
	var v Variants
	require.NoError(t, json.Unmarshal([]byte(`{"fit":"slim"}`), &v))
	assert.Equal(t, VariantsRaw, v.Kind())

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"fit":"slim"}`, string(b))
}

func TestVariants_UnmarshalJSON_ListWithoutNamesIsOpaque(t *testing.T) {
	var v Variants
	require.NoError(t, json.Unmarshal([]byte(`[1,2,3]`), &v))
	assert.Equal(t, VariantsRaw, v.Kind())
	assert.Nil(t, v.List())
}
