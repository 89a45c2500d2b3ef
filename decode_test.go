package aegis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderDefaults(t *testing.T) {
	// An empty object decodes to zero values for every schema field, with
	// no failure anywhere.
	obj := Parse(`{}`).Object()
	require.NotNil(t, obj)

	assert.False(t, obj.BoolField("is_flagged"))
	assert.Equal(t, 0.0, obj.FloatField("score"))
	assert.Equal(t, []string{}, obj.StringsField("tags"))
	assert.Equal(t, "", obj.StringField("severity"))
	assert.Equal(t, int64(0), obj.IntField("count"))
	assert.Nil(t, obj.FloatPtrField("threshold"))
	assert.Nil(t, obj.IntPtrField("limit"))
	assert.Nil(t, obj.ObjectField("category_scores"))
}

func TestStringField(t *testing.T) {
	obj := Parse(`{"s":"text","n":42,"f":1.5,"b":true,"arr":[1],"nul":null}`).Object()

	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "string passes through", key: "s", want: "text"},
		{name: "integer stringified", key: "n", want: "42"},
		{name: "float stringified", key: "f", want: "1.5"},
		{name: "bool stringified", key: "b", want: "true"},
		{name: "array stringified", key: "arr", want: "[1]"},
		{name: "null yields empty", key: "nul", want: ""},
		{name: "missing yields empty", key: "nope", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, obj.StringField(tt.key))
		})
	}
}

func TestBoolField(t *testing.T) {
	obj := Parse(`{"b":true,"bs":"true","one":1,"s":"nope","n":null}`).Object()

	assert.True(t, obj.BoolField("b"))
	assert.True(t, obj.BoolField("bs"))
	assert.True(t, obj.BoolField("one"))
	assert.False(t, obj.BoolField("s"))
	assert.False(t, obj.BoolField("n"))
	assert.False(t, obj.BoolField("missing"))
}

func TestNumericFields(t *testing.T) {
	obj := Parse(`{"i":7,"f":2.5,"is":"13","fs":"0.25","zero":0,"bad":"x","nul":null}`).Object()

	assert.Equal(t, int64(7), obj.IntField("i"))
	assert.Equal(t, int64(2), obj.IntField("f"))
	assert.Equal(t, int64(13), obj.IntField("is"))
	assert.Equal(t, int64(0), obj.IntField("bad"))
	assert.Equal(t, int64(0), obj.IntField("missing"))

	assert.Equal(t, 7.0, obj.FloatField("i"))
	assert.Equal(t, 2.5, obj.FloatField("f"))
	assert.Equal(t, 0.25, obj.FloatField("fs"))
	assert.Equal(t, 0.0, obj.FloatField("bad"))
	assert.Equal(t, 0.0, obj.FloatField("missing"))
}

func TestNullableNumericFields(t *testing.T) {
	// A nullable field is absent only when the key is missing or JSON null;
	// a literal 0 must come back as a pointer to 0.
	obj := Parse(`{"zero":0,"nul":null,"f":1.5}`).Object()

	zero := obj.IntPtrField("zero")
	require.NotNil(t, zero)
	assert.Equal(t, int64(0), *zero)

	assert.Nil(t, obj.IntPtrField("nul"))
	assert.Nil(t, obj.IntPtrField("missing"))

	f := obj.FloatPtrField("f")
	require.NotNil(t, f)
	assert.Equal(t, 1.5, *f)

	fzero := obj.FloatPtrField("zero")
	require.NotNil(t, fzero)
	assert.Equal(t, 0.0, *fzero)

	assert.Nil(t, obj.FloatPtrField("nul"))
}

func TestStringsField(t *testing.T) {
	obj := Parse(`{"tags":["a",1,true],"notlist":"a","nul":null}`).Object()

	assert.Equal(t, []string{"a", "1", "true"}, obj.StringsField("tags"))
	assert.Equal(t, []string{}, obj.StringsField("notlist"))
	assert.Equal(t, []string{}, obj.StringsField("nul"))
	assert.Equal(t, []string{}, obj.StringsField("missing"))
}

func TestObjectField(t *testing.T) {
	obj := Parse(`{"nested":{"k":1},"s":"x"}`).Object()

	nested := obj.ObjectField("nested")
	require.NotNil(t, nested)
	assert.Equal(t, int64(1), nested.IntField("k"))

	assert.Nil(t, obj.ObjectField("s"))
	assert.Nil(t, obj.ObjectField("missing"))
}

func TestDecoderNilObject(t *testing.T) {
	// Accessors are safe on a nil Object so decode chains never need
	// presence checks.
	var obj *Object

	assert.Equal(t, "", obj.StringField("k"))
	assert.False(t, obj.BoolField("k"))
	assert.Equal(t, int64(0), obj.IntField("k"))
	assert.Equal(t, 0.0, obj.FloatField("k"))
	assert.Equal(t, []string{}, obj.StringsField("k"))
	assert.Nil(t, obj.ObjectField("k"))
	assert.Nil(t, obj.IntPtrField("k"))
	assert.Nil(t, obj.FloatPtrField("k"))
}
