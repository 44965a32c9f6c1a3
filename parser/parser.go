/*
File : spicy/parser/parser.go
*/

/*
Package parser implements the recursive-descent front-end of SpicyLang.

It converts the token stream produced by the lexer into an Abstract
Syntax Tree. It handles:
  - Expressions (binary, unary, postfix, logical, literals, variables)
  - Assignment to variables, properties and list indexes
  - Function declarations, lambdas (`\(x) -> e`), arrow bodies
  - Pipe chaining (`f | g`), desugared into a unary lambda
  - Classes with single inheritance (`class B : A { ... }`)
  - Control flow (if/else, while, for — the latter desugared to while)
  - Error collection with statement-boundary synchronization

Every node that references a name (variable, assignment, this, super)
receives a small unique numeric id at construction; the resolver keys
its depth map by these ids.
*/
package parser

import (
	"fmt"

	"github.com/spicylang/spicy/lexer"
)

// maxArgs caps the number of parameters or call arguments.
const maxArgs = 255

// Parser holds the token stream and the parse state.
type Parser struct {
	Tokens  []lexer.Token // Token stream, terminated by END_OF_FILE
	Errors  []string      // Collected parse errors
	current int           // Index of the token currently being examined
}

// refIDCounter hands out node identities. It is process-wide, not
// per-parser, so ids stay unique across the several parses of one REPL
// session; the resolver's depth map is keyed by them for the program's
// lifetime.
var refIDCounter int

// parseError is the sentinel carried while unwinding to a
// synchronization point.
type parseError struct {
	msg string
}

func (e parseError) Error() string {
	return e.msg
}

// NewParser creates a parser over a scanned token stream.
func NewParser(tokens []lexer.Token) *Parser {
	return &Parser{
		Tokens: tokens,
		Errors: make([]string, 0),
	}
}

// ParseProgram parses the whole token stream into a program, recovering
// at statement boundaries so several errors can surface per run. Parse
// errors are collected into p.Errors.
func (p *Parser) ParseProgram() Program {
	program := make(Program, 0)
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.synchronize()
			continue
		}
		program = append(program, stmt)
	}
	return program
}

// newRefID hands out the next stable node identity.
func (p *Parser) newRefID() int {
	refIDCounter++
	return refIDCounter
}

// --- token plumbing ---

func (p *Parser) isAtEnd() bool {
	return p.peek().Type == lexer.END_OF_FILE
}

func (p *Parser) peek() lexer.Token {
	return p.Tokens[p.current]
}

func (p *Parser) previous() lexer.Token {
	return p.Tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(tokenType lexer.TokenType) bool {
	if p.isAtEnd() {
		return false
	}
	return p.peek().Type == tokenType
}

// match consumes the current token if it is one of the given kinds.
func (p *Parser) match(types ...lexer.TokenType) bool {
	for _, tokenType := range types {
		if p.check(tokenType) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of the expected kind or records an
// error at the current token.
func (p *Parser) consume(tokenType lexer.TokenType, msg string) (lexer.Token, error) {
	if p.check(tokenType) {
		return p.advance(), nil
	}
	return lexer.Token{}, p.errorAt(p.peek(), msg)
}

// errorAt records a parse error in the shared report format and returns
// the sentinel that unwinds to the nearest synchronization point.
func (p *Parser) errorAt(token lexer.Token, msg string) error {
	var where string
	if token.Type == lexer.END_OF_FILE {
		where = "at end"
	} else {
		where = fmt.Sprintf("at '%s'", token.Lexeme)
	}
	report := fmt.Sprintf("[line %d] Error %s: %s", token.Line, where, msg)
	p.Errors = append(p.Errors, report)
	return parseError{msg: report}
}

// synchronize discards tokens until a statement boundary: just past a
// ';' or right before a declaration keyword.
func (p *Parser) synchronize() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Type == lexer.SEMICOLON {
			return
		}
		switch p.peek().Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		p.advance()
	}
}
