/*
File : spicy/objects/objects_test.go
*/
package objects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjects_NumberFormatting(t *testing.T) {
	assert.Equal(t, "7", NewNum(7).ToString())
	assert.Equal(t, "0.5", NewNum(0.5).ToString())
	assert.Equal(t, "-3", NewNum(-3).ToString())
	assert.Equal(t, "55", NewNum(55).ToString())
}

func TestObjects_Truthiness(t *testing.T) {
	// only false and nil are falsy
	assert.False(t, IsTruthy(NewBoolean(false)))
	assert.False(t, IsTruthy(NilValue()))

	assert.True(t, IsTruthy(NewBoolean(true)))
	assert.True(t, IsTruthy(NewNum(0)))
	assert.True(t, IsTruthy(NewStr("")))
	assert.True(t, IsTruthy(NewList()))
}

func TestObjects_ValueEquality(t *testing.T) {
	assert.True(t, AreEqual(NewNum(1), NewNum(1)))
	assert.False(t, AreEqual(NewNum(1), NewNum(2)))
	assert.True(t, AreEqual(NewStr("a"), NewStr("a")))
	assert.False(t, AreEqual(NewStr("a"), NewStr("b")))
	assert.True(t, AreEqual(NewBoolean(true), NewBoolean(true)))
	assert.True(t, AreEqual(NilValue(), NilValue()))

	// no cross-type equality
	assert.False(t, AreEqual(NewNum(0), NewBoolean(false)))
	assert.False(t, AreEqual(NewStr("1"), NewNum(1)))
}

func TestObjects_ListIdentityEquality(t *testing.T) {
	a := NewList()
	b := NewList()
	assert.True(t, AreEqual(a, a))
	assert.False(t, AreEqual(a, b))
}

func TestList_AppendPrependAndIndex(t *testing.T) {
	l := NewList()
	l.Append(NewNum(1))
	l.Append(NewNum(2))
	l.Prepend(NewNum(0))

	assert.Equal(t, 3, l.Size())
	assert.Equal(t, "[0, 1, 2]", l.ToString())

	first, ok := l.Get(0)
	assert.True(t, ok)
	assert.Equal(t, "0", first.ToString())

	_, ok = l.Get(3)
	assert.False(t, ok)
	_, ok = l.Get(-1)
	assert.False(t, ok)

	assert.True(t, l.Set(1, NewStr("mid")))
	assert.Equal(t, "[0, mid, 2]", l.ToString())
	assert.False(t, l.Set(9, NewNum(9)))
}

func TestList_FrontAndBack(t *testing.T) {
	l := NewList()
	assert.Equal(t, "nil", l.Front().ToString())
	assert.Equal(t, "nil", l.Back().ToString())

	l.Append(NewNum(1))
	l.Append(NewNum(2))
	assert.Equal(t, "1", l.Front().ToString())
	assert.Equal(t, "2", l.Back().ToString())
}
