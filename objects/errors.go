/*
File : spicy/objects/errors.go
*/
package objects

import (
	"fmt"

	"github.com/spicylang/spicy/lexer"
)

// RuntimeError is an error raised during evaluation. It carries the token
// of the offending AST node so reports can name the source line.
type RuntimeError struct {
	Token lexer.Token
	Msg   string
}

// NewRuntimeError builds a runtime error attached to the given token.
func NewRuntimeError(token lexer.Token, msg string) *RuntimeError {
	return &RuntimeError{Token: token, Msg: msg}
}

// Error formats the error the way every SpicyLang error surface does:
// "[line N] Error at 'lexeme': message", or "... at end" for EOF.
func (e *RuntimeError) Error() string {
	if e.Token.Type == lexer.END_OF_FILE {
		return fmt.Sprintf("[line %d] Error at end: %s", e.Token.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error at '%s': %s", e.Token.Line, e.Token.Lexeme, e.Msg)
}
