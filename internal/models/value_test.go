package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_InsertionOrder(t *testing.T) {
	obj := NewObject()
	obj.Set("b", Number(1))
	obj.Set("a", Number(2))
	obj.Set("c", Number(3))

	assert.Equal(t, []string{"b", "a", "c"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())
}

func TestObject_OverwriteKeepsPosition(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	obj.Set("b", Number(2))
	obj.Set("a", Number(3))

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, Number(3), v)
}

func TestObject_GetMissing(t *testing.T) {
	obj := NewObject()
	_, ok := obj.Get("missing")
	assert.False(t, ok)
	assert.False(t, obj.Has("missing"))
}

func TestObject_Delete(t *testing.T) {
	obj := NewObject()
	obj.Set("a", Number(1))
	obj.Set("b", Number(2))
	obj.Set("c", Number(3))

	obj.Delete("b")
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
	assert.False(t, obj.Has("b"))

	// Deleting an absent key is a no-op
	obj.Delete("b")
	assert.Equal(t, 2, obj.Len())
}

func TestKind_Names(t *testing.T) {
	assert.Equal(t, "null", Null{}.Kind().String())
	assert.Equal(t, "bool", Bool(true).Kind().String())
	assert.Equal(t, "number", Number(0).Kind().String())
	assert.Equal(t, "string", String("").Kind().String())
	assert.Equal(t, "array", Array{}.Kind().String())
	assert.Equal(t, "object", NewObject().Kind().String())
}

func TestValueEqual(t *testing.T) {
	objA := NewObject()
	objA.Set("x", Number(1))
	objA.Set("y", String("s"))

	objB := NewObject()
	objB.Set("x", Number(1))
	objB.Set("y", String("s"))

	objReordered := NewObject()
	objReordered.Set("y", String("s"))
	objReordered.Set("x", Number(1))

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"nulls", Null{}, Null{}, true},
		{"bools", Bool(true), Bool(true), true},
		{"bool mismatch", Bool(true), Bool(false), false},
		{"numbers", Number(3.14), Number(3.14), true},
		{"kind mismatch", Number(1), String("1"), false},
		{"arrays", Array{Number(1), Null{}}, Array{Number(1), Null{}}, true},
		{"array length mismatch", Array{Number(1)}, Array{}, false},
		{"objects", objA, objB, true},
		{"object key order matters", objA, objReordered, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValueEqual(tc.a, tc.b))
		})
	}
}

func TestValueEqual_Nested(t *testing.T) {
	build := func() Value {
		inner := NewObject()
		inner.Set("tags", Array{String("go"), String("json")})
		outer := NewObject()
		outer.Set("user", inner)
		return outer
	}
	assert.True(t, ValueEqual(build(), build()))
}
