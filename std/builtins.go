/*
File : spicy/std/builtins.go
*/

// Package std provides SpicyLang's built-in functions. Built-ins present
// the same callable contract as user functions: an arity and an
// apply-with-arguments entry point. They are installed into the global
// frame before any user code runs.
package std

import (
	"fmt"
	"math"
	"time"

	"github.com/spicylang/spicy/objects"
)

// Builtin wraps a native Go function as a SpicyLang callable.
type Builtin struct {
	FnName  string
	NumArgs int
	Fn      func(args []objects.SpicyObject) objects.SpicyObject
}

// Arity returns the declared argument count.
func (b *Builtin) Arity() int {
	return b.NumArgs
}

// Run applies the built-in to already-evaluated arguments. The caller
// checks arity first.
func (b *Builtin) Run(args []objects.SpicyObject) objects.SpicyObject {
	return b.Fn(args)
}

// Name returns the built-in's global name.
func (b *Builtin) Name() string {
	return b.FnName
}

// GetType returns the type identifier for built-in functions.
func (b *Builtin) GetType() objects.SpicyType {
	return objects.BuiltinType
}

// ToString returns e.g. "<builtin fn sqrt>".
func (b *Builtin) ToString() string {
	return fmt.Sprintf("<builtin fn %s>", b.FnName)
}

// ToObject returns the same form as ToString.
func (b *Builtin) ToObject() string {
	return b.ToString()
}

// startTime anchors the clock built-in; monotonic by virtue of Go's
// time package keeping the monotonic reading on Since.
var startTime = time.Now()

// Builtins returns the full built-in set keyed by global name:
//
//	clock()      seconds since interpreter start
//	str(x)       canonical string form of x
//	sqrt(x)      square root of a number; nil on non-number
//	len(x)       length of a list or string; nil otherwise
//	front(x)     first element of a list or string; nil otherwise
//	back(x)      last element of a list or string; nil otherwise
func Builtins() map[string]*Builtin {
	return map[string]*Builtin{
		"clock": {
			FnName:  "clock",
			NumArgs: 0,
			Fn: func(args []objects.SpicyObject) objects.SpicyObject {
				return objects.NewNum(time.Since(startTime).Seconds())
			},
		},
		"str": {
			FnName:  "str",
			NumArgs: 1,
			Fn: func(args []objects.SpicyObject) objects.SpicyObject {
				return objects.NewStr(args[0].ToString())
			},
		},
		"sqrt": {
			FnName:  "sqrt",
			NumArgs: 1,
			Fn: func(args []objects.SpicyObject) objects.SpicyObject {
				if num, ok := args[0].(*objects.Num); ok {
					return objects.NewNum(math.Sqrt(num.Value))
				}
				return objects.NilValue()
			},
		},
		"len": {
			FnName:  "len",
			NumArgs: 1,
			Fn: func(args []objects.SpicyObject) objects.SpicyObject {
				switch v := args[0].(type) {
				case *objects.List:
					return objects.NewNum(float64(v.Size()))
				case *objects.Str:
					return objects.NewNum(float64(len(v.Value)))
				}
				return objects.NilValue()
			},
		},
		"front": {
			FnName:  "front",
			NumArgs: 1,
			Fn: func(args []objects.SpicyObject) objects.SpicyObject {
				switch v := args[0].(type) {
				case *objects.List:
					return v.Front()
				case *objects.Str:
					if len(v.Value) == 0 {
						return objects.NilValue()
					}
					return objects.NewStr(v.Value[:1])
				}
				return objects.NilValue()
			},
		},
		"back": {
			FnName:  "back",
			NumArgs: 1,
			Fn: func(args []objects.SpicyObject) objects.SpicyObject {
				switch v := args[0].(type) {
				case *objects.List:
					return v.Back()
				case *objects.Str:
					if len(v.Value) == 0 {
						return objects.NilValue()
					}
					return objects.NewStr(v.Value[len(v.Value)-1:])
				}
				return objects.NilValue()
			},
		},
	}
}
