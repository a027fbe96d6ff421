package models

// Kind identifies which variant a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. The set of implementations is closed:
// Null, Bool, Number, String, Array and *Object. A Value owns its
// descendants exclusively; trees are never shared between values.
type Value interface {
	Kind() Kind
}

// Null is the JSON null value.
type Null struct{}

// Bool is a JSON boolean.
type Bool bool

// Number is a JSON number, stored as a 64-bit float.
type Number float64

// String is a JSON string.
type String string

// Array is an ordered sequence of values.
type Array []Value

// Kind implements Value.
func (Null) Kind() Kind { return KindNull }

// Kind implements Value.
func (Bool) Kind() Kind { return KindBool }

// Kind implements Value.
func (Number) Kind() Kind { return KindNumber }

// Kind implements Value.
func (String) Kind() Kind { return KindString }

// Kind implements Value.
func (Array) Kind() Kind { return KindArray }

// Object is a JSON object that preserves key insertion order. Keys are
// unique; setting an existing key overwrites its value in place, so the
// key keeps the position of its first insertion.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject creates an empty Object.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Kind implements Value.
func (*Object) Kind() Kind { return KindObject }

// Set stores a value under key. A repeated key overwrites the earlier
// value (last occurrence wins) without changing its position.
func (o *Object) Set(key string, v Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// Get returns the value stored under key, if present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice is
// shared with the object and must not be modified.
func (o *Object) Keys() []string {
	return o.keys
}

// Len returns the number of keys.
func (o *Object) Len() int {
	return len(o.keys)
}

// Delete removes key and its value, preserving the order of the
// remaining keys.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

// ValueEqual reports structural equality of two values. Objects compare
// equal only when their keys appear in the same order with equal
// values.
func ValueEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	case String:
		return av == b.(String)
	case Array:
		bv := b.(Array)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !ValueEqual(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Object:
		bv := b.(*Object)
		if av.Len() != bv.Len() {
			return false
		}
		bKeys := bv.Keys()
		for i, k := range av.Keys() {
			if k != bKeys[i] {
				return false
			}
			x, _ := av.Get(k)
			y, _ := bv.Get(k)
			if !ValueEqual(x, y) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
