/*
File : spicy/eval/eval_statements.go
*/
package eval

import (
	"fmt"

	"github.com/spicylang/spicy/function"
	"github.com/spicylang/spicy/objects"
	"github.com/spicylang/spicy/parser"
)

// ExecStmt executes one statement. The first result is non-nil only
// when a `return` executed inside the statement; the value bubbles up
// to the enclosing call.
func (e *Evaluator) ExecStmt(stmt parser.Stmt) (objects.SpicyObject, error) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		value, err := e.EvalExpr(s.Expression)
		if err != nil {
			return nil, err
		}
		e.LastValue = value
		return nil, nil
	case *parser.PrintStmt:
		value, err := e.EvalExpr(s.Expression)
		if err != nil {
			return nil, err
		}
		fmt.Fprintln(e.Out, value.ToString())
		return nil, nil
	case *parser.BlockStmt:
		return e.execBlockStmt(s)
	case *parser.VarStmt:
		return nil, e.execVarStmt(s)
	case *parser.IfStmt:
		return e.execIfStmt(s)
	case *parser.WhileStmt:
		return e.execWhileStmt(s)
	case *parser.FuncStmt:
		fn := function.NewFunction(s.Func, s.FuncName.Lexeme, e.EnvMgr.Current())
		e.EnvMgr.Define(s.FuncName.Lexeme, fn)
		return nil, nil
	case *parser.RetStmt:
		if s.Value == nil {
			return objects.NilValue(), nil
		}
		return e.EvalExpr(s.Value)
	case *parser.ClassStmt:
		return nil, e.execClassStmt(s)
	}
	return nil, nil
}

// execStmts runs a statement list, stopping early when a return value
// bubbles up or a runtime error occurs.
func (e *Evaluator) execStmts(stmts []parser.Stmt) (objects.SpicyObject, error) {
	for _, stmt := range stmts {
		result, err := e.ExecStmt(stmt)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
	return nil, nil
}

// execBlockStmt runs the block in a fresh child frame, restoring the
// previous frame on every exit path.
func (e *Evaluator) execBlockStmt(stmt *parser.BlockStmt) (objects.SpicyObject, error) {
	prev := e.EnvMgr.Current()
	e.EnvMgr.CreateNew()
	defer e.EnvMgr.SetCurrent(prev)
	return e.execStmts(stmt.Statements)
}

// execVarStmt defines the variable; without an initializer it holds the
// distinguished nil, which reads reject until it is assigned.
func (e *Evaluator) execVarStmt(stmt *parser.VarStmt) error {
	if stmt.Initializer != nil {
		value, err := e.EvalExpr(stmt.Initializer)
		if err != nil {
			return err
		}
		e.EnvMgr.Define(stmt.VarName.Lexeme, value)
		return nil
	}
	e.EnvMgr.Define(stmt.VarName.Lexeme, objects.NilValue())
	return nil
}

func (e *Evaluator) execIfStmt(stmt *parser.IfStmt) (objects.SpicyObject, error) {
	condition, err := e.EvalExpr(stmt.Condition)
	if err != nil {
		return nil, err
	}
	if objects.IsTruthy(condition) {
		return e.ExecStmt(stmt.ThenBranch)
	}
	if stmt.ElseBranch != nil {
		return e.ExecStmt(stmt.ElseBranch)
	}
	return nil, nil
}

// execWhileStmt repeats the body until the condition turns falsy or a
// return value bubbles up.
func (e *Evaluator) execWhileStmt(stmt *parser.WhileStmt) (objects.SpicyObject, error) {
	for {
		condition, err := e.EvalExpr(stmt.Condition)
		if err != nil {
			return nil, err
		}
		if !objects.IsTruthy(condition) {
			return nil, nil
		}
		result, err := e.ExecStmt(stmt.LoopBody)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}
}

// execClassStmt evaluates a class declaration. The name is defined
// first with a placeholder so method bodies may reference it; the
// finished class value is assigned over the placeholder. Subclass
// method closures gain an extra frame defining `super`.
func (e *Evaluator) execClassStmt(stmt *parser.ClassStmt) error {
	e.EnvMgr.Define(stmt.ClassName.Lexeme, objects.NewStr("<class "+stmt.ClassName.Lexeme+">"))

	var superClass *function.Class
	if stmt.SuperClass != nil {
		superObj, err := e.EvalExpr(stmt.SuperClass)
		if err != nil {
			return err
		}
		class, isClass := superObj.(*function.Class)
		if !isClass {
			return objects.NewRuntimeError(stmt.ClassName, "Superclass must be a class; cannot inherit from a non-class.")
		}
		superClass = class
	}

	if superClass != nil {
		e.EnvMgr.CreateNew()
		e.EnvMgr.Define("super", superClass)
	}

	methods := make(map[string]*function.Function, len(stmt.Methods))
	for _, method := range stmt.Methods {
		isInit := method.FuncName.Lexeme == "init"
		methods[method.FuncName.Lexeme] = function.NewMethod(
			method.Func, method.FuncName.Lexeme, e.EnvMgr.Current(), isInit)
	}

	class := function.NewClass(stmt.ClassName.Lexeme, superClass, methods)

	if superClass != nil {
		e.EnvMgr.SetCurrent(e.EnvMgr.Current().Parent)
	}

	return wrapScopeError(stmt.ClassName, e.EnvMgr.Assign(stmt.ClassName.Lexeme, class))
}
