/*
File : spicy/resolver/resolver.go
*/

// Package resolver implements the static scope-analysis pass that runs
// between parsing and tree-walk evaluation. It walks the AST once,
// maintaining a stack of scope maps, and records the lexical depth of
// every name reference into the evaluator through the DepthSink
// interface. It also enforces the static rules: no reading a local in
// its own initializer, no duplicate locals, `return` with a value
// banned in initializers, `this` only inside classes, `super` only
// inside subclasses, and no self-inheritance.
package resolver

import (
	"fmt"

	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/parser"
)

// DepthSink receives (reference id, depth) pairs for every resolved
// local reference. The tree-walk evaluator implements it.
type DepthSink interface {
	Resolve(id int, depth int)
}

// functionType tracks what kind of function body is being resolved.
type functionType int

const (
	funcNone functionType = iota
	funcFunction
	funcInitializer
	funcMethod
	funcLambda
)

// classType tracks whether the resolver is inside a class body.
type classType int

const (
	classNone classType = iota
	classClass
	classSubclass
)

// Resolver holds the scope stack and the current function/class
// context. Errors are collected so several can surface per run.
type Resolver struct {
	Errors []string

	sink            DepthSink
	scopes          []map[string]bool
	currentFunction functionType
	currentClass    classType
}

// NewResolver creates a resolver reporting depths into the given sink.
func NewResolver(sink DepthSink) *Resolver {
	return &Resolver{
		Errors: make([]string, 0),
		sink:   sink,
		scopes: make([]map[string]bool, 0),
	}
}

// ResolveProgram resolves every statement of a program.
func (r *Resolver) ResolveProgram(program parser.Program) {
	for _, stmt := range program {
		r.resolveStmt(stmt)
	}
}

// HadError reports whether any resolve error was recorded.
func (r *Resolver) HadError() bool {
	return len(r.Errors) > 0
}

func (r *Resolver) resolveStmt(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.ExprStmt:
		r.resolveExpr(s.Expression)
	case *parser.PrintStmt:
		r.resolveExpr(s.Expression)
	case *parser.BlockStmt:
		r.beginScope()
		for _, inner := range s.Statements {
			r.resolveStmt(inner)
		}
		r.endScope()
	case *parser.VarStmt:
		r.declare(s.VarName)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.VarName)
	case *parser.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *parser.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.LoopBody)
	case *parser.FuncStmt:
		r.declare(s.FuncName)
		r.define(s.FuncName)
		r.resolveFunction(s.Func, funcFunction)
	case *parser.RetStmt:
		if s.Value != nil {
			if r.currentFunction == funcInitializer {
				r.errorAt(s.Keyword, "Cannot return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *parser.ClassStmt:
		r.resolveClass(s)
	}
}

func (r *Resolver) resolveClass(stmt *parser.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(stmt.ClassName)
	r.define(stmt.ClassName)

	hasSuperClass := stmt.SuperClass != nil
	if hasSuperClass {
		if stmt.ClassName.Lexeme == stmt.SuperClass.VarName.Lexeme {
			r.errorAt(stmt.SuperClass.VarName, "A class cannot inherit from itself.")
		}
		r.currentClass = classSubclass
		r.resolveExpr(stmt.SuperClass)
		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true
	for _, method := range stmt.Methods {
		kind := funcMethod
		if method.FuncName.Lexeme == "init" {
			kind = funcInitializer
		}
		r.resolveFunction(method.Func, kind)
	}
	r.endScope()

	if hasSuperClass {
		r.endScope()
	}
}

func (r *Resolver) resolveExpr(expr parser.Expr) {
	switch e := expr.(type) {
	case *parser.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.GroupingExpr:
		r.resolveExpr(e.Expression)
	case *parser.LiteralExpr:
		// nothing to resolve
	case *parser.UnaryExpr:
		r.resolveExpr(e.Right)
	case *parser.ConditionalExpr:
		// unused downstream; nothing recorded
	case *parser.PostfixExpr:
		r.resolveExpr(e.Left)
	case *parser.VariableExpr:
		if len(r.scopes) > 0 {
			if initialized, declared := r.scopes[len(r.scopes)-1][e.VarName.Lexeme]; declared && !initialized {
				r.errorAt(e.VarName, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.ID, e.VarName.Lexeme)
	case *parser.AssignExpr:
		r.resolveExpr(e.Right)
		r.resolveLocal(e.ID, e.VarName.Lexeme)
	case *parser.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *parser.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	case *parser.FuncExpr:
		r.resolveFunction(e, funcLambda)
	case *parser.GetExpr:
		r.resolveExpr(e.Object)
	case *parser.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *parser.ThisExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Cannot use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e.ID, e.Keyword.Lexeme)
	case *parser.SuperExpr:
		if r.currentClass == classNone {
			r.errorAt(e.Keyword, "Cannot use 'super' outside of a class.")
			return
		}
		if r.currentClass != classSubclass {
			r.errorAt(e.Keyword, "Cannot use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e.ID, e.Keyword.Lexeme)
	case *parser.IndexGetExpr:
		r.resolveExpr(e.List)
		r.resolveExpr(e.Index)
	case *parser.IndexSetExpr:
		r.resolveExpr(e.List)
		r.resolveExpr(e.Index)
		r.resolveExpr(e.Value)
	}
}

// resolveLocal walks the scope stack from innermost outward; the first
// scope containing the name determines the depth. Names found in no
// scope are globals and get no entry.
func (r *Resolver) resolveLocal(id int, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.sink.Resolve(id, len(r.scopes)-1-i)
			return
		}
	}
}

// resolveFunction pushes one scope that holds the parameters and the
// body's own declarations, and resolves the body in the given function
// context. The body gets no separate scope, so a body-level var that
// reuses a parameter's name is reported as a duplicate local.
func (r *Resolver) resolveFunction(fn *parser.FuncExpr, kind functionType) {
	r.beginScope()
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	for _, stmt := range fn.Body {
		r.resolveStmt(stmt)
	}
	r.currentFunction = enclosingFunction
	r.endScope()
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// declare marks a name as declared-but-uninitialized in the innermost
// scope. Declaring the same local twice in one scope is an error.
func (r *Resolver) declare(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	innermost := r.scopes[len(r.scopes)-1]
	if _, exists := innermost[name.Lexeme]; exists {
		r.errorAt(name, "Already a variable with this name in this scope.")
	}
	innermost[name.Lexeme] = false
}

// define marks a name as initialized in the innermost scope.
func (r *Resolver) define(name lexer.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) errorAt(token lexer.Token, msg string) {
	var where string
	if token.Type == lexer.END_OF_FILE {
		where = "at end"
	} else {
		where = fmt.Sprintf("at '%s'", token.Lexeme)
	}
	r.Errors = append(r.Errors, fmt.Sprintf("[line %d] Error %s: %s", token.Line, where, msg))
}
