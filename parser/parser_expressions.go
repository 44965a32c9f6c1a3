/*
File : spicy/parser/parser_expressions.go
*/
package parser

import (
	"fmt"

	"github.com/spicylang/spicy/lexer"
)

// expression parses any expression. Precedence, low to high:
// assignment, or, and, equality, comparison, append, term, factor,
// unary, postfix, pipe chain, call, primary.
func (p *Parser) expression() (Expr, error) {
	return p.assignment()
}

// assignment parses right-associative `=`. Only a variable reference, a
// property get or an index get may appear on the left; anything else
// reports "Invalid assignment target." at the '=' token.
func (p *Parser) assignment() (Expr, error) {
	expr, err := p.logicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.EQUAL) {
		equals := p.previous()
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *VariableExpr:
			return &AssignExpr{ID: p.newRefID(), VarName: target.VarName, Right: value}, nil
		case *GetExpr:
			return &SetExpr{Object: target.Object, Name: target.Name, Value: value}, nil
		case *IndexGetExpr:
			return &IndexSetExpr{
				LBracket: target.LBracket,
				List:     target.List,
				Index:    target.Index,
				Value:    value,
			}, nil
		}
		return nil, p.errorAt(equals, "Invalid assignment target.")
	}
	return expr, nil
}

func (p *Parser) logicalOr() (Expr, error) {
	expr, err := p.logicalAnd()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.OR) {
		op := p.previous()
		rhs, err := p.logicalAnd()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) logicalAnd() (Expr, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.AND) {
		op := p.previous()
		rhs, err := p.equality()
		if err != nil {
			return nil, err
		}
		expr = &LogicalExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) equality() (Expr, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.BANG_EQUAL, lexer.EQUAL_EQUAL) {
		op := p.previous()
		rhs, err := p.comparison()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) comparison() (Expr, error) {
	expr, err := p.appendExpr()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.GREATER, lexer.GREATER_EQUAL, lexer.LESS, lexer.LESS_EQUAL) {
		op := p.previous()
		rhs, err := p.appendExpr()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

// appendExpr parses the list append/prepend operators:
// `lst <- v` appends v to lst, `v -> lst` prepends v to lst.
func (p *Parser) appendExpr() (Expr, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.RARROW, lexer.ARROW) {
		op := p.previous()
		rhs, err := p.term()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) term() (Expr, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.PLUS, lexer.MINUS) {
		op := p.previous()
		rhs, err := p.factor()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) factor() (Expr, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.STAR, lexer.SLASH) {
		op := p.previous()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		expr = &BinaryExpr{Left: expr, Op: op, Right: rhs}
	}
	return expr, nil
}

func (p *Parser) unary() (Expr, error) {
	if p.match(lexer.BANG, lexer.MINUS, lexer.PLUS_PLUS, lexer.MINUS_MINUS) {
		op := p.previous()
		rhs, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{Op: op, Right: rhs}, nil
	}
	return p.postfix()
}

func (p *Parser) postfix() (Expr, error) {
	expr, err := p.chain()
	if err != nil {
		return nil, err
	}
	for p.match(lexer.PLUS_PLUS, lexer.MINUS_MINUS) {
		expr = &PostfixExpr{Left: expr, Op: p.previous()}
	}
	return expr, nil
}

// chain parses the pipe operator. (f | g)(x) is equivalent to f(g(x))
// and is desugared as (\(x') -> f(g(x')))(x); the extra lambda matters
// when the chained functions are not immediately called. Not to confuse
// with f | g(x), which yields \(x') -> f(g(x)(x')) and fails at runtime
// if g(x) is not itself a function.
func (p *Parser) chain() (Expr, error) {
	expr, err := p.call()
	if err != nil {
		return nil, err
	}
	if p.match(lexer.PIPE) {
		pipe := p.previous()

		param := lexer.NewToken(lexer.IDENTIFIER, "__anon__no__collide", nil, pipe.Line)

		inner, err := p.expression()
		if err != nil {
			return nil, err
		}
		innerCall := &CallExpr{
			Callee:    inner,
			Paren:     pipe,
			Arguments: []Expr{&VariableExpr{ID: p.newRefID(), VarName: param}},
		}
		outerCall := &CallExpr{
			Callee:    expr,
			Paren:     pipe,
			Arguments: []Expr{innerCall},
		}
		body := []Stmt{&RetStmt{Keyword: pipe, Value: outerCall}}
		return &FuncExpr{Params: []lexer.Token{param}, Body: body}, nil
	}
	return expr, nil
}

// call parses calls, property accesses and index accesses, left to
// right, after a primary expression.
func (p *Parser) call() (Expr, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		if p.match(lexer.LEFT_PAREN) {
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}
		} else if p.match(lexer.DOT) {
			name, err := p.consume(lexer.IDENTIFIER, "Expect property name after '.'.")
			if err != nil {
				return nil, err
			}
			expr = &GetExpr{Object: expr, Name: name}
		} else if p.match(lexer.LEFT_BRACKET) {
			lbracket := p.previous()
			idx, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.consume(lexer.RIGHT_BRACKET, "Expect ']' after index."); err != nil {
				return nil, err
			}
			expr = &IndexGetExpr{LBracket: lbracket, List: expr, Index: idx}
		} else {
			break
		}
	}
	return expr, nil
}

func (p *Parser) finishCall(callee Expr) (Expr, error) {
	args := make([]Expr, 0)
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				// report but keep parsing; the call stays usable
				p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}
			arg, err := p.expression()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	paren, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after arguments.")
	if err != nil {
		return nil, err
	}
	return &CallExpr{Callee: callee, Paren: paren, Arguments: args}, nil
}

func (p *Parser) primary() (Expr, error) {
	switch {
	case p.match(lexer.FALSE):
		return &LiteralExpr{Value: false, Token: p.previous()}, nil
	case p.match(lexer.TRUE):
		return &LiteralExpr{Value: true, Token: p.previous()}, nil
	case p.match(lexer.NIL):
		return &LiteralExpr{Value: nil, Token: p.previous()}, nil
	case p.match(lexer.LIST):
		// the empty-list literal '[]'; the evaluator builds a fresh list
		return &LiteralExpr{Value: nil, Token: p.previous()}, nil
	case p.match(lexer.NUMBER, lexer.STRING):
		return &LiteralExpr{Value: p.previous().Literal, Token: p.previous()}, nil
	case p.match(lexer.SUPER):
		keyword := p.previous()
		if _, err := p.consume(lexer.DOT, "Expect '.' after 'super'."); err != nil {
			return nil, err
		}
		method, err := p.consume(lexer.IDENTIFIER, "Expect superclass method name.")
		if err != nil {
			return nil, err
		}
		return &SuperExpr{ID: p.newRefID(), Keyword: keyword, Method: method}, nil
	case p.match(lexer.FUN), p.match(lexer.BACKSLASH):
		return p.lambdaFunction()
	case p.match(lexer.THIS):
		return &ThisExpr{ID: p.newRefID(), Keyword: p.previous()}, nil
	case p.match(lexer.IDENTIFIER):
		return &VariableExpr{ID: p.newRefID(), VarName: p.previous()}, nil
	case p.match(lexer.LEFT_PAREN):
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after expression."); err != nil {
			return nil, err
		}
		return &GroupingExpr{Expression: expr}, nil
	}
	return nil, p.errorAt(p.peek(), "Expected an expression.")
}

// lambdaFunction parses the parameter list and body of a lambda,
// introduced by `\` (or `fun` in expression position). The body is
// either a braced block or a single expression after '->'.
func (p *Parser) lambdaFunction() (Expr, error) {
	if _, err := p.consume(lexer.LEFT_PAREN, "Expect '(' after lambda declaration."); err != nil {
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
		return &FuncExpr{Params: params, Body: body}, nil
	}

	// single expression body
	if p.match(lexer.ARROW) {
		arrow := p.previous()
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}
		body := []Stmt{&RetStmt{Keyword: arrow, Value: expr}}
		return &FuncExpr{Params: params, Body: body}, nil
	}

	return nil, p.errorAt(p.peek(), "Expected function body.")
}

// parameterList parses zero or more comma-separated parameter names up
// to the closing ')'.
func (p *Parser) parameterList() ([]lexer.Token, error) {
	params := make([]lexer.Token, 0)
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}
			param, err := p.consume(lexer.IDENTIFIER, "Expect parameter name.")
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(lexer.COMMA) {
				break
			}
		}
	}
	if _, err := p.consume(lexer.RIGHT_PAREN, "Expect ')' after parameters."); err != nil {
		return nil, err
	}
	return params, nil
}
