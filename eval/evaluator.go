/*
File : spicy/eval/evaluator.go
*/

// Package eval implements the tree-walk execution engine of SpicyLang.
// The evaluator dispatches over AST node types, reading variable depths
// recorded by the resolver, and drives calls, closures, classes and
// inheritance through the scope manager.
package eval

import (
	"io"

	"github.com/spicylang/spicy/function"
	"github.com/spicylang/spicy/objects"
	"github.com/spicylang/spicy/parser"
	"github.com/spicylang/spicy/scope"
	"github.com/spicylang/spicy/std"
)

// Evaluator executes a resolved program. It keeps the environment
// manager, the resolver's depth map (keyed by node id) and the output
// writer `print` writes to. LastValue tracks the value of the most
// recent expression statement, which the REPL echoes.
type Evaluator struct {
	EnvMgr    *scope.Manager
	Locals    map[int]int
	Out       io.Writer
	LastValue objects.SpicyObject
}

// NewEvaluator creates an evaluator with a fresh global frame and the
// built-ins installed. Output produced by `print` goes to out.
func NewEvaluator(out io.Writer) *Evaluator {
	e := &Evaluator{
		EnvMgr:    scope.NewManager(),
		Locals:    make(map[int]int),
		Out:       out,
		LastValue: objects.NilValue(),
	}
	e.initBuiltins()
	return e
}

// Resolve records the lexical depth of a name reference. The resolver
// calls it for every local reference it finds; references without an
// entry resolve in the global frame.
func (e *Evaluator) Resolve(id int, depth int) {
	e.Locals[id] = depth
}

// ExecProgram executes the statements of a program in order. The first
// runtime error halts execution and is returned.
func (e *Evaluator) ExecProgram(program parser.Program) error {
	for _, stmt := range program {
		if _, err := e.ExecStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// initBuiltins installs the built-in functions into the global frame.
func (e *Evaluator) initBuiltins() {
	for name, builtin := range std.Builtins() {
		e.EnvMgr.DefineGlobal(name, builtin)
	}
}

// bindInstance produces a new function value whose private frame
// defines `this` as the given instance and whose parent is the method's
// original closure. The original method value is left untouched.
func (e *Evaluator) bindInstance(method *function.Function, instance *function.Instance) *function.Function {
	methodClosure := scope.NewScope(method.Closure)
	methodClosure.Define("this", instance)
	return function.NewMethod(method.Declaration, method.FnName, methodClosure, method.IsInit)
}
