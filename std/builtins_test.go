/*
File : spicy/std/builtins_test.go
*/
package std

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spicylang/spicy/objects"
)

func call(t *testing.T, name string, args ...objects.SpicyObject) objects.SpicyObject {
	t.Helper()
	builtin, ok := Builtins()[name]
	assert.True(t, ok)
	assert.Equal(t, len(args), builtin.Arity())
	return builtin.Run(args)
}

func TestBuiltins_Clock(t *testing.T) {
	result := call(t, "clock")
	num, ok := result.(*objects.Num)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, num.Value, 0.0)
}

func TestBuiltins_Str(t *testing.T) {
	assert.Equal(t, "7", call(t, "str", objects.NewNum(7)).ToString())
	assert.Equal(t, "true", call(t, "str", objects.NewBoolean(true)).ToString())
	assert.Equal(t, "nil", call(t, "str", objects.NilValue()).ToString())
	assert.Equal(t, objects.StrType, call(t, "str", objects.NewNum(7)).GetType())
}

func TestBuiltins_Sqrt(t *testing.T) {
	assert.Equal(t, "3", call(t, "sqrt", objects.NewNum(9)).ToString())
	// non-number yields nil
	assert.Equal(t, objects.NilType, call(t, "sqrt", objects.NewStr("9")).GetType())
}

func TestBuiltins_Len(t *testing.T) {
	l := objects.NewList()
	l.Append(objects.NewNum(1))
	l.Append(objects.NewNum(2))
	assert.Equal(t, "2", call(t, "len", l).ToString())
	assert.Equal(t, "5", call(t, "len", objects.NewStr("hello")).ToString())
	assert.Equal(t, objects.NilType, call(t, "len", objects.NewNum(5)).GetType())
}

func TestBuiltins_FrontAndBack(t *testing.T) {
	l := objects.NewList()
	l.Append(objects.NewStr("a"))
	l.Append(objects.NewStr("b"))
	assert.Equal(t, "a", call(t, "front", l).ToString())
	assert.Equal(t, "b", call(t, "back", l).ToString())

	assert.Equal(t, "h", call(t, "front", objects.NewStr("hi")).ToString())
	assert.Equal(t, "i", call(t, "back", objects.NewStr("hi")).ToString())

	assert.Equal(t, objects.NilType, call(t, "front", objects.NewStr("")).GetType())
	assert.Equal(t, objects.NilType, call(t, "back", objects.NewNum(1)).GetType())
}

func TestBuiltins_PresentTheCallableContract(t *testing.T) {
	for name, builtin := range Builtins() {
		assert.Equal(t, name, builtin.Name())
		assert.Equal(t, objects.BuiltinType, builtin.GetType())
		assert.Contains(t, builtin.ToString(), name)
	}
}
