/*
File : spicy/objects/list.go
*/
package objects

import "strings"

// List represents an ordered mutable sequence of SpicyLang values.
// It supports append, prepend, indexed get/set, front/back and size;
// the `<-` and `->` operators and the list built-ins are implemented
// on top of these methods.
type List struct {
	Elements []SpicyObject
}

// NewList creates an empty list value.
func NewList() *List {
	return &List{Elements: make([]SpicyObject, 0)}
}

// GetType returns the type of the List object
func (l *List) GetType() SpicyType {
	return ListType
}

// ToString returns the canonical form, e.g. "[1, 2, 3]"
func (l *List) ToString() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range l.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.ToString())
	}
	sb.WriteString("]")
	return sb.String()
}

// ToObject returns a detailed representation (e.g. `<list([1, 2])>`)
func (l *List) ToObject() string {
	return "<list(" + l.ToString() + ")>"
}

// Append adds a value at the back of the list.
func (l *List) Append(value SpicyObject) {
	l.Elements = append(l.Elements, value)
}

// Prepend adds a value at the front of the list.
func (l *List) Prepend(value SpicyObject) {
	l.Elements = append([]SpicyObject{value}, l.Elements...)
}

// Get returns the element at idx, or false when idx is out of range.
func (l *List) Get(idx int) (SpicyObject, bool) {
	if idx < 0 || idx >= len(l.Elements) {
		return nil, false
	}
	return l.Elements[idx], true
}

// Set overwrites the element at idx, reporting false when idx is out
// of range.
func (l *List) Set(idx int, value SpicyObject) bool {
	if idx < 0 || idx >= len(l.Elements) {
		return false
	}
	l.Elements[idx] = value
	return true
}

// Front returns the first element, or the nil value when empty.
func (l *List) Front() SpicyObject {
	if len(l.Elements) == 0 {
		return NilValue()
	}
	return l.Elements[0]
}

// Back returns the last element, or the nil value when empty.
func (l *List) Back() SpicyObject {
	if len(l.Elements) == 0 {
		return NilValue()
	}
	return l.Elements[len(l.Elements)-1]
}

// Size returns the number of elements.
func (l *List) Size() int {
	return len(l.Elements)
}
