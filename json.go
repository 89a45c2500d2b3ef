package aegis

import (
	"strconv"
	"strings"
)

// ValueKind identifies which variant a Value holds.
type ValueKind uint8

const (
	// ValueNull is the zero value. It is also what Parse returns for input
	// it cannot make sense of.
	ValueNull ValueKind = iota
	ValueBool
	ValueInt
	ValueFloat
	ValueString
	ValueArray
	ValueObject
)

// Value is the dynamic representation of a JSON document. The zero Value is
// null. Values are immutable once built, with the exception of Object, which
// is mutated through its Set method while a request body is being assembled.
type Value struct {
	kind ValueKind
	b    bool
	n    int64
	f    float64
	s    string
	a    []Value
	o    *Object
}

// Null returns the null Value. Identical to the zero Value; provided for
// readability at call sites.
func Null() Value { return Value{} }

// Bool wraps a bool in a Value.
func Bool(v bool) Value { return Value{kind: ValueBool, b: v} }

// Int wraps a 64-bit integer in a Value.
func Int(v int64) Value { return Value{kind: ValueInt, n: v} }

// Float wraps a float64 in a Value.
func Float(v float64) Value { return Value{kind: ValueFloat, f: v} }

// String wraps a string in a Value.
func String(v string) Value { return Value{kind: ValueString, s: v} }

// Array wraps the given elements in an array Value. Elements may be of mixed
// kinds.
func Array(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: ValueArray, a: items}
}

// Kind reports which variant the Value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.kind == ValueNull }

// Bool returns the bool payload, or false if the Value is not a bool.
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload, or 0 if the Value is not an integer.
func (v Value) Int() int64 { return v.n }

// Float returns the float payload, or 0 if the Value is not a float.
func (v Value) Float() float64 { return v.f }

// Str returns the string payload, or "" if the Value is not a string.
func (v Value) Str() string { return v.s }

// Items returns the elements of an array Value, or nil for any other kind.
func (v Value) Items() []Value { return v.a }

// Object returns the object payload, or nil for any other kind.
func (v Value) Object() *Object { return v.o }

// String returns the serialized form of the Value. It implements
// fmt.Stringer; use Serialize when you want to be explicit.
func (v Value) String() string { return Serialize(v) }

// Object is an insertion-ordered string → Value mapping. Setting a key that
// already exists overwrites the value but keeps the key's original position,
// so round-trip serialization is stable.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set inserts or overwrites a key. It returns the Object so request bodies
// can be built in a chain.
func (o *Object) Set(key string, v Value) *Object {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
	return o
}

// Get returns the value stored at key and whether it was present.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Keys returns the keys in insertion order. The returned slice is a copy.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

// Value wraps the Object in a Value.
func (o *Object) Value() Value { return Value{kind: ValueObject, o: o} }

// Parse converts JSON text into a Value. The parser is deliberately
// forgiving: any structural problem (truncated input, a key without a colon,
// an unterminated string) makes the whole parse yield null instead of an
// error. Callers must treat a null result as "could not parse" and must not
// expect a diagnostic. See Client documentation for why this contract exists.
func Parse(text string) Value {
	p := &jsonParser{src: text}
	v, ok := p.parseValue()
	if !ok {
		return Value{}
	}
	return v
}

type jsonParser struct {
	src string
	pos int
}

func (p *jsonParser) skipSpace() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func isDelimiter(c byte) bool {
	switch c {
	case ',', ':', '{', '}', '[', ']', '"', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

func (p *jsonParser) parseValue() (Value, bool) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return Value{}, false
	}

	switch c := p.src[p.pos]; {
	case c == '{':
		p.pos++
		return p.parseObject()
	case c == '[':
		p.pos++
		return p.parseArray()
	case c == '"':
		p.pos++
		s, ok := p.parseString()
		if !ok {
			return Value{}, false
		}
		return String(s), true
	default:
		return p.parseWord()
	}
}

func (p *jsonParser) parseObject() (Value, bool) {
	obj := NewObject()
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Value{}, false
		}
		switch p.src[p.pos] {
		case '}':
			p.pos++
			return obj.Value(), true
		case ',':
			p.pos++
			continue
		case '"':
			p.pos++
			key, ok := p.parseString()
			if !ok {
				return Value{}, false
			}
			p.skipSpace()
			if p.pos >= len(p.src) || p.src[p.pos] != ':' {
				return Value{}, false
			}
			p.pos++
			v, ok := p.parseValue()
			if !ok {
				return Value{}, false
			}
			obj.Set(key, v)
		default:
			return Value{}, false
		}
	}
}

func (p *jsonParser) parseArray() (Value, bool) {
	items := make([]Value, 0, 4)
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return Value{}, false
		}
		switch p.src[p.pos] {
		case ']':
			p.pos++
			return Value{kind: ValueArray, a: items}, true
		case ',':
			p.pos++
			continue
		default:
			v, ok := p.parseValue()
			if !ok {
				return Value{}, false
			}
			items = append(items, v)
		}
	}
}

// parseString reads characters up to the closing quote. The opening quote
// has already been consumed.
func (p *jsonParser) parseString() (string, bool) {
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		p.pos++
		switch c {
		case '"':
			return b.String(), true
		case '\\':
			if p.pos >= len(p.src) {
				return "", false
			}
			e := p.src[p.pos]
			p.pos++
			switch e {
			case '"', '\\', '/':
				b.WriteByte(e)
			case 'b':
				b.WriteByte('\b')
			case 'f':
				b.WriteByte('\f')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'u':
				if p.pos+4 > len(p.src) {
					return "", false
				}
				code, err := strconv.ParseUint(p.src[p.pos:p.pos+4], 16, 32)
				if err != nil {
					return "", false
				}
				p.pos += 4
				b.WriteRune(rune(code))
			default:
				// Unknown escape: keep the character as-is.
				b.WriteByte(e)
			}
		default:
			b.WriteByte(c)
		}
	}
	// Unterminated string.
	return "", false
}

// parseWord handles the barewords true/false/null and numbers. Per the wire
// contract, a number without a fractional part is a 64-bit integer and
// anything unparsable collapses to 0 rather than failing the parse.
func (p *jsonParser) parseWord() (Value, bool) {
	start := p.pos
	for p.pos < len(p.src) && !isDelimiter(p.src[p.pos]) {
		p.pos++
	}
	word := p.src[start:p.pos]
	if word == "" {
		return Value{}, false
	}

	switch word {
	case "true":
		return Bool(true), true
	case "false":
		return Bool(false), true
	case "null":
		return Null(), true
	}

	c := word[0]
	if c != '-' && (c < '0' || c > '9') {
		return Value{}, false
	}

	if strings.ContainsAny(word, ".eE") {
		f, err := strconv.ParseFloat(word, 64)
		if err != nil {
			f = 0
		}
		return Float(f), true
	}
	n, err := strconv.ParseInt(word, 10, 64)
	if err != nil {
		n = 0
	}
	return Int(n), true
}

// Serialize converts a Value back into compact JSON text: no inserted
// whitespace, object keys in insertion order, floats in their shortest
// round-trip form.
func Serialize(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch v.kind {
	case ValueNull:
		b.WriteString("null")
	case ValueBool:
		if v.b {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case ValueInt:
		b.WriteString(strconv.FormatInt(v.n, 10))
	case ValueFloat:
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
	case ValueString:
		writeString(b, v.s)
	case ValueArray:
		b.WriteByte('[')
		for i, item := range v.a {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	case ValueObject:
		b.WriteByte('{')
		for i, key := range v.o.keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeString(b, key)
			b.WriteByte(':')
			writeValue(b, v.o.values[key])
		}
		b.WriteByte('}')
	}
}

const hexUpper = "0123456789ABCDEF"

func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 {
				b.WriteString(`\u00`)
				b.WriteByte(hexUpper[c>>4])
				b.WriteByte(hexUpper[c&0xF])
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
}
