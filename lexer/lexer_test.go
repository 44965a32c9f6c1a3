/*
File : spicy/lexer/lexer_test.go
*/
package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexer_ScanTokens_Punctuation(t *testing.T) {
	src := `( ) { } , . - + ; / * : | \ [ ]`
	lex := NewLexer(src)
	tokens := lex.ScanTokens()

	expected := []TokenType{
		LEFT_PAREN, RIGHT_PAREN, LEFT_BRACE, RIGHT_BRACE,
		COMMA, DOT, MINUS, PLUS, SEMICOLON, SLASH, STAR,
		COLON, PIPE, BACKSLASH, LEFT_BRACKET, RIGHT_BRACKET,
		END_OF_FILE,
	}
	assert.Equal(t, len(expected), len(tokens))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Type)
	}
	assert.Empty(t, lex.Errors)
}

func TestLexer_ScanTokens_Operators(t *testing.T) {
	src := `! != = == < <= > >= ++ -- -> <-`
	lex := NewLexer(src)
	tokens := lex.ScanTokens()

	expected := []TokenType{
		BANG, BANG_EQUAL, EQUAL, EQUAL_EQUAL,
		LESS, LESS_EQUAL, GREATER, GREATER_EQUAL,
		PLUS_PLUS, MINUS_MINUS, ARROW, RARROW,
		END_OF_FILE,
	}
	assert.Equal(t, len(expected), len(tokens))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Type)
	}
}

func TestLexer_ScanTokens_Keywords(t *testing.T) {
	src := `and class else false fun for if nil or print return super this true var while import`
	lex := NewLexer(src)
	tokens := lex.ScanTokens()

	expected := []TokenType{
		AND, CLASS, ELSE, FALSE, FUN, FOR, IF, NIL, OR,
		PRINT, RETURN, SUPER, THIS, TRUE, VAR, WHILE, IMPORT,
		END_OF_FILE,
	}
	assert.Equal(t, len(expected), len(tokens))
	for i, kind := range expected {
		assert.Equal(t, kind, tokens[i].Type)
	}
}

func TestLexer_ScanTokens_NumberLiterals(t *testing.T) {
	lex := NewLexer(`12 3.14 0.5`)
	tokens := lex.ScanTokens()

	assert.Equal(t, 4, len(tokens))
	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, 12.0, tokens[0].Literal)
	assert.Equal(t, 3.14, tokens[1].Literal)
	assert.Equal(t, 0.5, tokens[2].Literal)
}

func TestLexer_ScanTokens_NumberFollowedByDot(t *testing.T) {
	// a trailing '.' is a separate token, not part of the number
	lex := NewLexer(`12.abs`)
	tokens := lex.ScanTokens()

	assert.Equal(t, NUMBER, tokens[0].Type)
	assert.Equal(t, 12.0, tokens[0].Literal)
	assert.Equal(t, DOT, tokens[1].Type)
	assert.Equal(t, IDENTIFIER, tokens[2].Type)
}

func TestLexer_ScanTokens_StringLiteral(t *testing.T) {
	lex := NewLexer(`"hello world"`)
	tokens := lex.ScanTokens()

	assert.Equal(t, STRING, tokens[0].Type)
	assert.Equal(t, "hello world", tokens[0].Literal)
	assert.Equal(t, `"hello world"`, tokens[0].Lexeme)
}

func TestLexer_ScanTokens_UnterminatedString(t *testing.T) {
	lex := NewLexer(`"oops`)
	tokens := lex.ScanTokens()

	// no STRING token is emitted, only EOF
	assert.Equal(t, 1, len(tokens))
	assert.Equal(t, END_OF_FILE, tokens[0].Type)
	assert.Equal(t, 1, len(lex.Errors))
	assert.Contains(t, lex.Errors[0], "Unterminated string.")
}

func TestLexer_ScanTokens_UnexpectedCharacter(t *testing.T) {
	lex := NewLexer(`var x = 1 @ 2;`)
	tokens := lex.ScanTokens()

	assert.Equal(t, 1, len(lex.Errors))
	assert.Contains(t, lex.Errors[0], "Unexpected character.")
	// scanning continues past the bad character
	assert.Equal(t, END_OF_FILE, tokens[len(tokens)-1].Type)
}

func TestLexer_ScanTokens_EmptyListLiteral(t *testing.T) {
	lex := NewLexer(`var l = [];`)
	tokens := lex.ScanTokens()

	assert.Equal(t, VAR, tokens[0].Type)
	assert.Equal(t, LIST, tokens[3].Type)
	assert.Equal(t, "[]", tokens[3].Lexeme)
}

func TestLexer_ScanTokens_CommentsAndLines(t *testing.T) {
	src := "var a = 1; // first\nvar b = 2;\n\nprint a + b;"
	lex := NewLexer(src)
	tokens := lex.ScanTokens()

	assert.Empty(t, lex.Errors)
	assert.Equal(t, 1, tokens[0].Line)
	bLines := make([]int, 0)
	for _, tok := range tokens {
		if tok.Lexeme == "b" {
			bLines = append(bLines, tok.Line)
		}
		if tok.Type == PRINT {
			assert.Equal(t, 4, tok.Line)
		}
	}
	// 'b' is declared on line 2 and read again on line 4
	assert.Equal(t, []int{2, 4}, bLines)
}

func TestLexer_ScanSingle_Mode(t *testing.T) {
	lex := NewLexer(`print 1;`)

	tok := lex.ScanSingle()
	assert.Equal(t, PRINT, tok.Type)
	tok = lex.ScanSingle()
	assert.Equal(t, NUMBER, tok.Type)
	tok = lex.ScanSingle()
	assert.Equal(t, SEMICOLON, tok.Type)
	tok = lex.ScanSingle()
	assert.Equal(t, END_OF_FILE, tok.Type)
	// EOF repeats once the input is exhausted
	tok = lex.ScanSingle()
	assert.Equal(t, END_OF_FILE, tok.Type)
}

func TestLexer_ScanTokens_Identifiers(t *testing.T) {
	lex := NewLexer(`foo _bar baz42 classy`)
	tokens := lex.ScanTokens()

	assert.Equal(t, IDENTIFIER, tokens[0].Type)
	assert.Equal(t, "foo", tokens[0].Lexeme)
	assert.Equal(t, IDENTIFIER, tokens[1].Type)
	assert.Equal(t, "_bar", tokens[1].Lexeme)
	assert.Equal(t, IDENTIFIER, tokens[2].Type)
	// 'classy' must not lex as the 'class' keyword
	assert.Equal(t, IDENTIFIER, tokens[3].Type)
}
