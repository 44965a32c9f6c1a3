/*
File : spicy/objects/objects.go
*/

// Package objects defines the runtime value model of SpicyLang.
// It provides implementations for the primitive value kinds (strings,
// numbers, booleans, nil) and lists, plus the shared helpers for
// truthiness, equality and canonical string form. Callable values
// (functions, classes, instances) live in the function package and
// built-ins in the std package; all of them implement the SpicyObject
// interface defined here.
package objects

import (
	"fmt"
	"strconv"
)

// SpicyType identifies the runtime type of a value as a string constant.
// These constants enable type checking and polymorphic behavior across
// the value kinds without reflection.
type SpicyType string

const (
	// StrType represents string values
	StrType SpicyType = "string"
	// NumType represents 64-bit floating-point numbers
	NumType SpicyType = "number"
	// BoolType represents boolean (true/false) values
	BoolType SpicyType = "bool"
	// NilType represents the distinguished nil value
	NilType SpicyType = "nil"
	// ListType represents ordered mutable sequences
	ListType SpicyType = "list"

	// FuncType represents user-defined functions (defined in package function)
	FuncType SpicyType = "func"
	// BuiltinType represents built-in functions (defined in package std)
	BuiltinType SpicyType = "builtin"
	// ClassType represents class values (defined in package function)
	ClassType SpicyType = "class"
	// InstanceType represents class instances (defined in package function)
	InstanceType SpicyType = "instance"
)

// SpicyObject is the core interface every SpicyLang value implements.
type SpicyObject interface {
	// GetType returns the SpicyType of the value, used for type checking
	GetType() SpicyType
	// ToString returns the canonical string form of the value, the one
	// `print` and the `str` built-in produce
	ToString() string
	// ToObject returns a detailed representation including type
	// information, useful for debugging and inspection
	ToObject() string
}

// Named is implemented by callable values that carry a declared name
// (functions, built-ins, classes). Equality between callables compares
// these names.
type Named interface {
	SpicyObject
	Name() string
}

// Str represents a string value.
type Str struct {
	Value string
}

// GetType returns the type of the Str object
func (s *Str) GetType() SpicyType {
	return StrType
}

// ToString returns the raw string value
func (s *Str) ToString() string {
	return s.Value
}

// ToObject returns a detailed representation (e.g. `<string("hi")>`)
func (s *Str) ToObject() string {
	return fmt.Sprintf("<string(%q)>", s.Value)
}

// Num represents a 64-bit floating-point number.
type Num struct {
	Value float64
}

// GetType returns the type of the Num object
func (n *Num) GetType() SpicyType {
	return NumType
}

// ToString returns the shortest decimal form of the number, so integral
// values print without a fractional part (e.g. "7", "0.5")
func (n *Num) ToString() string {
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

// ToObject returns a detailed representation (e.g. `<number(7)>`)
func (n *Num) ToObject() string {
	return fmt.Sprintf("<number(%s)>", n.ToString())
}

// Boolean represents a true/false value.
type Boolean struct {
	Value bool
}

// GetType returns the type of the Boolean object
func (b *Boolean) GetType() SpicyType {
	return BoolType
}

// ToString returns "true" or "false"
func (b *Boolean) ToString() string {
	return strconv.FormatBool(b.Value)
}

// ToObject returns a detailed representation (e.g. `<bool(true)>`)
func (b *Boolean) ToObject() string {
	return fmt.Sprintf("<bool(%t)>", b.Value)
}

// Nil represents the distinguished nil value. A variable declared without
// an initializer holds Nil until it is assigned; reading it through the
// environment fails with an uninitialized-variable error.
type Nil struct{}

// GetType returns the type of the Nil object
func (n *Nil) GetType() SpicyType {
	return NilType
}

// ToString returns "nil"
func (n *Nil) ToString() string {
	return "nil"
}

// ToObject returns "<nil>"
func (n *Nil) ToObject() string {
	return "<nil>"
}

// NewStr wraps a Go string as a SpicyLang value.
func NewStr(value string) *Str {
	return &Str{Value: value}
}

// NewNum wraps a float64 as a SpicyLang value.
func NewNum(value float64) *Num {
	return &Num{Value: value}
}

// NewBoolean wraps a bool as a SpicyLang value.
func NewBoolean(value bool) *Boolean {
	return &Boolean{Value: value}
}

// NilValue returns the nil value. Nil carries no state, so a single
// shared instance serves every use.
func NilValue() *Nil {
	return theNil
}

var theNil = &Nil{}
