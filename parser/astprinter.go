/*
File : spicy/parser/astprinter.go
*/
package parser

import (
	"fmt"
	"strings"

	"github.com/spicylang/spicy/lexer"
)

// ASTPrinter renders the tree in a compact parenthesized form, one
// statement per line. It backs the --ast debugging flag.
type ASTPrinter struct{}

// PrintProgram renders every statement of a program.
func (pr *ASTPrinter) PrintProgram(program Program) string {
	var sb strings.Builder
	for _, stmt := range program {
		sb.WriteString(pr.PrintStmt(stmt))
		sb.WriteString("\n")
	}
	return sb.String()
}

// PrintStmt renders a single statement.
func (pr *ASTPrinter) PrintStmt(stmt Stmt) string {
	switch s := stmt.(type) {
	case *ExprStmt:
		return pr.parenthesize("expr", pr.PrintExpr(s.Expression))
	case *PrintStmt:
		return pr.parenthesize("print", pr.PrintExpr(s.Expression))
	case *BlockStmt:
		parts := make([]string, 0, len(s.Statements))
		for _, inner := range s.Statements {
			parts = append(parts, pr.PrintStmt(inner))
		}
		return pr.parenthesize("block", parts...)
	case *VarStmt:
		if s.Initializer != nil {
			return pr.parenthesize("var "+s.VarName.Lexeme, pr.PrintExpr(s.Initializer))
		}
		return pr.parenthesize("var " + s.VarName.Lexeme)
	case *IfStmt:
		if s.ElseBranch != nil {
			return pr.parenthesize("if", pr.PrintExpr(s.Condition), pr.PrintStmt(s.ThenBranch), pr.PrintStmt(s.ElseBranch))
		}
		return pr.parenthesize("if", pr.PrintExpr(s.Condition), pr.PrintStmt(s.ThenBranch))
	case *WhileStmt:
		return pr.parenthesize("while", pr.PrintExpr(s.Condition), pr.PrintStmt(s.LoopBody))
	case *FuncStmt:
		return pr.parenthesize("fun "+s.FuncName.Lexeme, pr.printFunc(s.Func))
	case *RetStmt:
		if s.Value != nil {
			return pr.parenthesize("return", pr.PrintExpr(s.Value))
		}
		return pr.parenthesize("return")
	case *ClassStmt:
		parts := make([]string, 0, len(s.Methods)+1)
		if s.SuperClass != nil {
			parts = append(parts, ": "+s.SuperClass.VarName.Lexeme)
		}
		for _, m := range s.Methods {
			parts = append(parts, pr.PrintStmt(m))
		}
		return pr.parenthesize("class "+s.ClassName.Lexeme, parts...)
	}
	return "(?stmt)"
}

// PrintExpr renders a single expression.
func (pr *ASTPrinter) PrintExpr(expr Expr) string {
	switch e := expr.(type) {
	case *BinaryExpr:
		return pr.parenthesize(e.Op.Lexeme, pr.PrintExpr(e.Left), pr.PrintExpr(e.Right))
	case *GroupingExpr:
		return pr.parenthesize("group", pr.PrintExpr(e.Expression))
	case *LiteralExpr:
		return pr.printLiteral(e)
	case *UnaryExpr:
		return pr.parenthesize(e.Op.Lexeme, pr.PrintExpr(e.Right))
	case *ConditionalExpr:
		return pr.parenthesize("?:", pr.PrintExpr(e.Condition), pr.PrintExpr(e.ThenBranch), pr.PrintExpr(e.ElseBranch))
	case *PostfixExpr:
		return pr.parenthesize("postfix "+e.Op.Lexeme, pr.PrintExpr(e.Left))
	case *VariableExpr:
		return e.VarName.Lexeme
	case *AssignExpr:
		return pr.parenthesize("= "+e.VarName.Lexeme, pr.PrintExpr(e.Right))
	case *LogicalExpr:
		return pr.parenthesize(e.Op.Lexeme, pr.PrintExpr(e.Left), pr.PrintExpr(e.Right))
	case *CallExpr:
		parts := []string{pr.PrintExpr(e.Callee)}
		for _, arg := range e.Arguments {
			parts = append(parts, pr.PrintExpr(arg))
		}
		return pr.parenthesize("call", parts...)
	case *FuncExpr:
		return pr.printFunc(e)
	case *GetExpr:
		return pr.parenthesize("get "+e.Name.Lexeme, pr.PrintExpr(e.Object))
	case *SetExpr:
		return pr.parenthesize("set "+e.Name.Lexeme, pr.PrintExpr(e.Object), pr.PrintExpr(e.Value))
	case *ThisExpr:
		return "this"
	case *SuperExpr:
		return "super." + e.Method.Lexeme
	case *IndexGetExpr:
		return pr.parenthesize("index", pr.PrintExpr(e.List), pr.PrintExpr(e.Index))
	case *IndexSetExpr:
		return pr.parenthesize("index-set", pr.PrintExpr(e.List), pr.PrintExpr(e.Index), pr.PrintExpr(e.Value))
	}
	return "(?expr)"
}

func (pr *ASTPrinter) printFunc(fn *FuncExpr) string {
	params := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Lexeme)
	}
	body := make([]string, 0, len(fn.Body))
	for _, stmt := range fn.Body {
		body = append(body, pr.PrintStmt(stmt))
	}
	return pr.parenthesize("lambda ("+strings.Join(params, " ")+")", body...)
}

func (pr *ASTPrinter) printLiteral(e *LiteralExpr) string {
	switch v := e.Value.(type) {
	case nil:
		if e.Token.Type == lexer.LIST {
			return "[]"
		}
		return "nil"
	case string:
		return fmt.Sprintf("%q", v)
	case float64:
		return e.Token.Lexeme
	case bool:
		return fmt.Sprintf("%t", v)
	}
	return "(?lit)"
}

func (pr *ASTPrinter) parenthesize(name string, parts ...string) string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(name)
	for _, part := range parts {
		sb.WriteString(" ")
		sb.WriteString(part)
	}
	sb.WriteString(")")
	return sb.String()
}
