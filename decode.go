package aegis

import "strconv"

// Tolerant field accessors.
//
// The service evolves its response shapes faster than the SDK ships, so
// endpoint decoding never hard-fails on a missing or oddly-typed field. Each
// accessor coerces what it finds to the expected type and falls back to the
// type's zero value, letting endpoint glue read fields in straight-line code
// without presence checks. All accessors are safe on a nil Object.

// textOf renders a Value as plain text: strings yield their payload, every
// other kind yields its serialized form.
func textOf(v Value) string {
	if v.kind == ValueString {
		return v.s
	}
	return Serialize(v)
}

// StringField returns the field as text. Non-string values are stringified;
// a missing key or an explicit null yields "".
func (o *Object) StringField(key string) string {
	v, ok := o.Get(key)
	if !ok || v.IsNull() {
		return ""
	}
	return textOf(v)
}

// BoolField returns the field as a bool. Non-bool values are parsed from
// their textual form; anything unparsable yields false.
func (o *Object) BoolField(key string) bool {
	v, ok := o.Get(key)
	if !ok {
		return false
	}
	if v.kind == ValueBool {
		return v.b
	}
	b, err := strconv.ParseBool(textOf(v))
	if err != nil {
		return false
	}
	return b
}

// IntField returns the field as an int64, accepting integer, float, and
// textual numeric values. A missing or unparsable field yields 0.
func (o *Object) IntField(key string) int64 {
	v, ok := o.Get(key)
	if !ok {
		return 0
	}
	return coerceInt(v)
}

// FloatField returns the field as a float64, accepting integer, float, and
// textual numeric values. A missing or unparsable field yields 0.
func (o *Object) FloatField(key string) float64 {
	v, ok := o.Get(key)
	if !ok {
		return 0
	}
	return coerceFloat(v)
}

// IntPtrField is the nullable variant of IntField: nil only when the key is
// missing or explicitly null, so callers can tell "absent" from a literal 0.
func (o *Object) IntPtrField(key string) *int64 {
	v, ok := o.Get(key)
	if !ok || v.IsNull() {
		return nil
	}
	n := coerceInt(v)
	return &n
}

// FloatPtrField is the nullable variant of FloatField: nil only when the key
// is missing or explicitly null.
func (o *Object) FloatPtrField(key string) *float64 {
	v, ok := o.Get(key)
	if !ok || v.IsNull() {
		return nil
	}
	f := coerceFloat(v)
	return &f
}

// StringsField returns the field as a list of strings, stringifying each
// element. Anything that is not an array yields an empty list.
func (o *Object) StringsField(key string) []string {
	v, _ := o.Get(key)
	if v.kind != ValueArray {
		return []string{}
	}
	out := make([]string, len(v.a))
	for i, item := range v.a {
		out[i] = textOf(item)
	}
	return out
}

// ObjectField returns the field as an Object for further decoding, or nil
// when the field is missing or not an object.
func (o *Object) ObjectField(key string) *Object {
	v, _ := o.Get(key)
	if v.kind != ValueObject {
		return nil
	}
	return v.o
}

func coerceInt(v Value) int64 {
	switch v.kind {
	case ValueInt:
		return v.n
	case ValueFloat:
		return int64(v.f)
	}
	text := textOf(v)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return int64(f)
	}
	return 0
}

func coerceFloat(v Value) float64 {
	switch v.kind {
	case ValueInt:
		return float64(v.n)
	case ValueFloat:
		return v.f
	}
	f, err := strconv.ParseFloat(textOf(v), 64)
	if err != nil {
		return 0
	}
	return f
}
