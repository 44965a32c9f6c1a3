/*
File : spicy/parser/parser_statements.go
*/
package parser

import (
	"fmt"

	"github.com/spicylang/spicy/lexer"
)

// declaration parses one top-level or block-level declaration.
func (p *Parser) declaration() (Stmt, error) {
	if p.match(lexer.CLASS) {
		return p.classDeclaration()
	}
	if p.match(lexer.FUN) {
		return p.functionDeclaration("function")
	}
	if p.match(lexer.VAR) {
		return p.varDeclaration()
	}
	return p.statement()
}

// statement parses one non-declaring statement.
func (p *Parser) statement() (Stmt, error) {
	if p.match(lexer.IF) {
		return p.ifStatement()
	}
	if p.match(lexer.PRINT) {
		return p.printStatement()
	}
	if p.match(lexer.RETURN) {
		return p.returnStatement()
	}
	if p.match(lexer.WHILE) {
		return p.whileStatement()
	}
	if p.match(lexer.FOR) {
		return p.forStatement()
	}
	if p.match(lexer.LEFT_BRACE) {
		stmts, err := p.block()
		if err != nil {
			return nil, err
		}
		return &BlockStmt{Statements: stmts}, nil
	}
	return p.expressionStatement()
}

func (p *Parser) varDeclaration() (Stmt, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expected variable name.")
	if err != nil {
		return nil, err
	}
	var initializer Expr
	if p.match(lexer.EQUAL) {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after variable declaration."); err != nil {
		return nil, err
	}
	return &VarStmt{VarName: name, Initializer: initializer}, nil
}

func (p *Parser) printStatement() (Stmt, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expected ';' after value."); err != nil {
		return nil, err
	}
	return &PrintStmt{Expression: value}, nil
}

func (p *Parser) returnStatement() (Stmt, error) {
	keyword := p.previous()
	var value Expr
	var err error
	if !p.check(lexer.SEMICOLON) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after return value."); err != nil {
		return nil, err
	}
	return &RetStmt{Keyword: keyword, Value: value}, nil
}

func (p *Parser) whileStatement() (Stmt, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after condition."); err != nil {
		return nil, err
	}
	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Condition: condition, LoopBody: body}, nil
}

// forStatement desugars `for (init; cond; incr) body` into
// `{ init; while (cond) { body; incr; } }`.
func (p *Parser) forStatement() (Stmt, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'."); err != nil {
		return nil, err
	}

	var initializer Stmt
	var err error
	if p.match(lexer.SEMICOLON) {
		initializer = nil
	} else if p.match(lexer.VAR) {
		initializer, err = p.varDeclaration()
		if err != nil {
			return nil, err
		}
	} else {
		initializer, err = p.expressionStatement()
		if err != nil {
			return nil, err
		}
	}

	var condition Expr
	if !p.check(lexer.SEMICOLON) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after loop condition."); err != nil {
		return nil, err
	}

	var increment Expr
	if !p.check(lexer.RIGHT_PAREN) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses."); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &BlockStmt{Statements: []Stmt{body, &ExprStmt{Expression: increment}}}
	}
	if condition == nil {
		condition = &LiteralExpr{Value: true, Token: p.previous()}
	}
	body = &WhileStmt{Condition: condition, LoopBody: body}
	if initializer != nil {
		body = &BlockStmt{Statements: []Stmt{initializer, body}}
	}
	return body, nil
}

func (p *Parser) expressionStatement() (Stmt, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.SEMICOLON, "Expected ';' after expression."); err != nil {
		return nil, err
	}
	return &ExprStmt{Expression: expr}, nil
}

func (p *Parser) ifStatement() (Stmt, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'."); err != nil {
		return nil, err
	}
	condition, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after if condition."); err != nil {
		return nil, err
	}

	thenBranch, err := p.statement()
	if err != nil {
		return nil, err
	}
	var elseBranch Stmt
	if p.match(lexer.ELSE) {
		elseBranch, err = p.statement()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Condition: condition, ThenBranch: thenBranch, ElseBranch: elseBranch}, nil
}

// functionDeclaration parses a named function or method. The body is a
// braced block or `-> expression;`.
func (p *Parser) functionDeclaration(kind string) (*FuncStmt, error) {
	name, err := p.consume(lexer.IDENTIFIER, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.LEFT_PAREN, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return nil, err
	}
	params, err := p.parameterList()
	if err != nil {
		return nil, err
	}

	// block body
	if p.match(lexer.LEFT_BRACE) {
		body, err := p.block()
		if err != nil {
			return nil, err
		}
		return &FuncStmt{FuncName: name, Func: &FuncExpr{Params: params, Body: body}}, nil
	}

	// single expression body
	if p.match(lexer.ARROW) {
		arrow := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.SEMICOLON, "Expect ';' after shorthand function declaration."); err != nil {
			return nil, err
		}
		body := []Stmt{&RetStmt{Keyword: arrow, Value: expr}}
		return &FuncStmt{FuncName: name, Func: &FuncExpr{Params: params, Body: body}}, nil
	}

	return nil, p.errorAt(p.peek(), "Expected function body.")
}

// classDeclaration parses `class Name (: Super)? { method* }`. The
// method named `init` becomes the initializer at evaluation time.
func (p *Parser) classDeclaration() (Stmt, error) {
	name, err := p.consume(lexer.IDENTIFIER, "Expect class name.")
	if err != nil {
		return nil, err
	}
	var superClass *VariableExpr
	if p.match(lexer.COLON) {
		superName, err := p.consume(lexer.IDENTIFIER, "Expect superclass name.")
		if err != nil {
			return nil, err
		}
		superClass = &VariableExpr{ID: p.newRefID(), VarName: superName}
	}
	if _, err := p.consume(lexer.LEFT_BRACE, "Expect '{' before class body."); err != nil {
		return nil, err
	}
	methods := make([]*FuncStmt, 0)
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		method, err := p.functionDeclaration("method")
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	if _, err := p.consume(lexer.RIGHT_BRACE, "Expect '}' after class body."); err != nil {
		return nil, err
	}
	return &ClassStmt{ClassName: name, SuperClass: superClass, Methods: methods}, nil
}

// block parses the statements of a braced block, past the closing '}'.
func (p *Parser) block() ([]Stmt, error) {
	stmts := make([]Stmt, 0)
	for !p.check(lexer.RIGHT_BRACE) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	if _, err := p.consume(lexer.RIGHT_BRACE, "Expect '}' after block statement."); err != nil {
		return nil, err
	}
	return stmts, nil
}
