/*
File : spicy/function/function.go
*/

// Package function defines SpicyLang's user-declared callable values:
// functions (including lambdas and bound methods), classes and class
// instances. The evaluator drives their invocation; this package only
// carries their state.
package function

import (
	"fmt"

	"github.com/spicylang/spicy/objects"
	"github.com/spicylang/spicy/parser"
	"github.com/spicylang/spicy/scope"
)

// Function represents a user-defined function value. It captures the
// parsed declaration, the source-level name, and the frame the function
// was created in (for closure support). Methods additionally carry the
// IsMethod/IsInit flags that drive `this` binding and the initializer's
// always-return-the-instance rule.
type Function struct {
	Declaration *parser.FuncExpr // Parameters and body statements
	FnName      string           // Declared name ("lambda" for lambdas)
	Closure     *scope.Scope     // Captured frame for closures
	IsMethod    bool             // True for class methods
	IsInit      bool             // True for the `init` initializer
}

// NewFunction creates a plain (non-method) function value.
func NewFunction(declaration *parser.FuncExpr, name string, closure *scope.Scope) *Function {
	return &Function{Declaration: declaration, FnName: name, Closure: closure}
}

// NewMethod creates a method-flavored function value.
func NewMethod(declaration *parser.FuncExpr, name string, closure *scope.Scope, isInit bool) *Function {
	return &Function{
		Declaration: declaration,
		FnName:      name,
		Closure:     closure,
		IsMethod:    true,
		IsInit:      isInit,
	}
}

// Arity returns the declared parameter count.
func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

// Name returns the declared function name.
func (f *Function) Name() string {
	return f.FnName
}

// GetType returns the type identifier for function values.
func (f *Function) GetType() objects.SpicyType {
	return objects.FuncType
}

// ToString returns e.g. "<fn fib>".
func (f *Function) ToString() string {
	return fmt.Sprintf("<fn %s>", f.FnName)
}

// ToObject returns a detailed representation including the parameter
// names, e.g. "<func[fib(n)]>".
func (f *Function) ToObject() string {
	args := ""
	for i, param := range f.Declaration.Params {
		if i > 0 {
			args += ", "
		}
		args += param.Lexeme
	}
	return fmt.Sprintf("<func[%s(%s)]>", f.FnName, args)
}
