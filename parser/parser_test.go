/*
File : spicy/parser/parser_test.go
*/
package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spicylang/spicy/lexer"
)

func parse(t *testing.T, src string) (Program, *Parser) {
	t.Helper()
	lex := lexer.NewLexer(src)
	tokens := lex.ScanTokens()
	assert.Empty(t, lex.Errors)
	par := NewParser(tokens)
	return par.ParseProgram(), par
}

func TestParser_ParseProgram_Precedence(t *testing.T) {
	program, par := parse(t, `1 + 2 * 3;`)
	assert.Empty(t, par.Errors)
	assert.Equal(t, 1, len(program))

	exprStmt, ok := program[0].(*ExprStmt)
	assert.True(t, ok)
	add, ok := exprStmt.Expression.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, lexer.PLUS, add.Op.Type)

	// the multiplication binds tighter and sits on the right
	mul, ok := add.Right.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, lexer.STAR, mul.Op.Type)
}

func TestParser_ParseProgram_AssignmentTargets(t *testing.T) {
	program, par := parse(t, `a = 1; o.x = 2; l[0] = 3;`)
	assert.Empty(t, par.Errors)
	assert.Equal(t, 3, len(program))

	_, isAssign := program[0].(*ExprStmt).Expression.(*AssignExpr)
	assert.True(t, isAssign)
	_, isSet := program[1].(*ExprStmt).Expression.(*SetExpr)
	assert.True(t, isSet)
	_, isIndexSet := program[2].(*ExprStmt).Expression.(*IndexSetExpr)
	assert.True(t, isIndexSet)
}

func TestParser_ParseProgram_InvalidAssignmentTarget(t *testing.T) {
	_, par := parse(t, `1 + 2 = 3;`)
	assert.Equal(t, 1, len(par.Errors))
	assert.Contains(t, par.Errors[0], "Invalid assignment target.")
}

func TestParser_ParseProgram_AppendOperators(t *testing.T) {
	program, par := parse(t, `l <- 1; 0 -> l;`)
	assert.Empty(t, par.Errors)

	app, ok := program[0].(*ExprStmt).Expression.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, lexer.RARROW, app.Op.Type)

	prep, ok := program[1].(*ExprStmt).Expression.(*BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, lexer.ARROW, prep.Op.Type)
}

func TestParser_ParseProgram_Lambda(t *testing.T) {
	program, par := parse(t, `var f = \(x) -> x + 1;`)
	assert.Empty(t, par.Errors)

	varStmt, ok := program[0].(*VarStmt)
	assert.True(t, ok)
	fn, ok := varStmt.Initializer.(*FuncExpr)
	assert.True(t, ok)
	assert.Equal(t, 1, len(fn.Params))
	assert.Equal(t, "x", fn.Params[0].Lexeme)

	// an arrow body wraps the expression in a return statement
	assert.Equal(t, 1, len(fn.Body))
	_, isRet := fn.Body[0].(*RetStmt)
	assert.True(t, isRet)
}

func TestParser_ParseProgram_LambdaBlockBody(t *testing.T) {
	program, par := parse(t, `var f = \(a, b) { return a + b; };`)
	assert.Empty(t, par.Errors)

	fn := program[0].(*VarStmt).Initializer.(*FuncExpr)
	assert.Equal(t, 2, len(fn.Params))
	assert.Equal(t, 1, len(fn.Body))
}

func TestParser_ParseProgram_PipeDesugarsToLambda(t *testing.T) {
	program, par := parse(t, `var h = f | g;`)
	assert.Empty(t, par.Errors)

	fn, ok := program[0].(*VarStmt).Initializer.(*FuncExpr)
	assert.True(t, ok)
	assert.Equal(t, 1, len(fn.Params))
	assert.Equal(t, "__anon__no__collide", fn.Params[0].Lexeme)

	ret, ok := fn.Body[0].(*RetStmt)
	assert.True(t, ok)
	outer, ok := ret.Value.(*CallExpr)
	assert.True(t, ok)
	// outer call targets f, its single argument is the call to g
	callee, ok := outer.Callee.(*VariableExpr)
	assert.True(t, ok)
	assert.Equal(t, "f", callee.VarName.Lexeme)
	inner, ok := outer.Arguments[0].(*CallExpr)
	assert.True(t, ok)
	innerCallee, ok := inner.Callee.(*VariableExpr)
	assert.True(t, ok)
	assert.Equal(t, "g", innerCallee.VarName.Lexeme)
}

func TestParser_ParseProgram_ArrowFunctionDeclaration(t *testing.T) {
	program, par := parse(t, `fun double(x) -> x * 2;`)
	assert.Empty(t, par.Errors)

	fnStmt, ok := program[0].(*FuncStmt)
	assert.True(t, ok)
	assert.Equal(t, "double", fnStmt.FuncName.Lexeme)
	_, isRet := fnStmt.Func.Body[0].(*RetStmt)
	assert.True(t, isRet)
}

func TestParser_ParseProgram_ForDesugarsToWhile(t *testing.T) {
	program, par := parse(t, `for (var i = 0; i < 5; i = i + 1) print i;`)
	assert.Empty(t, par.Errors)
	assert.Equal(t, 1, len(program))

	block, ok := program[0].(*BlockStmt)
	assert.True(t, ok)
	assert.Equal(t, 2, len(block.Statements))
	_, isVar := block.Statements[0].(*VarStmt)
	assert.True(t, isVar)
	loop, isWhile := block.Statements[1].(*WhileStmt)
	assert.True(t, isWhile)

	// the increment lands in a block wrapping the body
	body, ok := loop.LoopBody.(*BlockStmt)
	assert.True(t, ok)
	assert.Equal(t, 2, len(body.Statements))
}

func TestParser_ParseProgram_ClassDeclaration(t *testing.T) {
	src := `
class B : A {
    init(x) { this.x = x; }
    greet() { print "hi"; }
}
`
	program, par := parse(t, src)
	assert.Empty(t, par.Errors)

	class, ok := program[0].(*ClassStmt)
	assert.True(t, ok)
	assert.Equal(t, "B", class.ClassName.Lexeme)
	assert.NotNil(t, class.SuperClass)
	assert.Equal(t, "A", class.SuperClass.VarName.Lexeme)
	assert.Equal(t, 2, len(class.Methods))
	assert.Equal(t, "init", class.Methods[0].FuncName.Lexeme)
}

func TestParser_ParseProgram_SuperExpression(t *testing.T) {
	src := `class B : A { greet() { super.greet(); } }`
	program, par := parse(t, src)
	assert.Empty(t, par.Errors)

	class := program[0].(*ClassStmt)
	body := class.Methods[0].Func.Body
	call := body[0].(*ExprStmt).Expression.(*CallExpr)
	superExpr, ok := call.Callee.(*SuperExpr)
	assert.True(t, ok)
	assert.Equal(t, "greet", superExpr.Method.Lexeme)
}

func TestParser_ParseProgram_ErrorSynchronization(t *testing.T) {
	// two separate errors surface from one parse
	src := `var = 1; var y 2; print y;`
	program, par := parse(t, src)
	assert.Equal(t, 2, len(par.Errors))
	// the well-formed trailing statement still parses
	assert.Equal(t, 1, len(program))
}

func TestParser_ParseProgram_MissingSemicolon(t *testing.T) {
	_, par := parse(t, `print 1`)
	assert.Equal(t, 1, len(par.Errors))
	assert.Contains(t, par.Errors[0], "at end")
}

func TestParser_NodeIDs_AreUnique(t *testing.T) {
	program, par := parse(t, `a; a; b;`)
	assert.Empty(t, par.Errors)

	seen := make(map[int]bool)
	for _, stmt := range program {
		ref := stmt.(*ExprStmt).Expression.(*VariableExpr)
		assert.False(t, seen[ref.ID])
		seen[ref.ID] = true
	}
}

func TestParser_ParseProgram_EmptyListLiteral(t *testing.T) {
	program, par := parse(t, `var l = [];`)
	assert.Empty(t, par.Errors)

	lit, ok := program[0].(*VarStmt).Initializer.(*LiteralExpr)
	assert.True(t, ok)
	assert.Equal(t, lexer.LIST, lit.Token.Type)
}

func TestParser_ParseProgram_IndexGet(t *testing.T) {
	program, par := parse(t, `print l[i + 1];`)
	assert.Empty(t, par.Errors)

	idx, ok := program[0].(*PrintStmt).Expression.(*IndexGetExpr)
	assert.True(t, ok)
	_, isVar := idx.List.(*VariableExpr)
	assert.True(t, isVar)
	_, isBinary := idx.Index.(*BinaryExpr)
	assert.True(t, isBinary)
}
