/*
File : spicy/compiler/compiler.go
*/

// Package compiler implements the single-pass Pratt compiler of
// SpicyLang: it pulls tokens from the lexer one at a time and emits
// bytecode into a chunk as it parses. A rule table maps each token kind
// to its prefix action, infix action and precedence; parsePrecedence
// drives the actions while the current token binds at least as tightly
// as the requested level.
//
// The compiler covers the statement subset the reference VM executes:
// variable declarations (globals and scoped locals), print, expression
// statements, blocks, if/else, while and for, with jump back-patching
// for the control flow.
package compiler

import (
	"fmt"
	"math"

	"github.com/spicylang/spicy/chunk"
	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/objects"
)

// precedence levels, low to high.
type precedence int

const (
	precNone       precedence = iota
	precAssignment            // =
	precOr                    // or
	precAnd                   // and
	precEquality              // == !=
	precComparison            // < > <= >=
	precAppend                // <- ->
	precTerm                  // + -
	precFactor                // * /
	precUnary                 // ! -
	precCall                  // . () []
	precPrimary
)

// parseFn is one prefix or infix compilation action. canAssign is true
// only while compiling the top-level left-hand side of an assignment.
type parseFn func(canAssign bool)

// parseRule couples a token kind's actions with its infix precedence.
type parseRule struct {
	prefix parseFn
	infix  parseFn
	prec   precedence
}

// local is one scoped variable slot. depth stays -1 between declaration
// and the end of the initializer; reading it in that window is an error.
type local struct {
	name  lexer.Token
	depth int
}

// Compiler holds the scanner, the chunk under construction and the
// scoping state.
type Compiler struct {
	Errors []string

	scanner  *lexer.Lexer
	chunk    *chunk.Chunk
	previous lexer.Token
	current  lexer.Token
	rules    map[lexer.TokenType]parseRule

	locals     []local
	scopeDepth int

	hadError  bool
	panicMode bool
}

// NewCompiler creates a compiler over the given source text.
func NewCompiler(src string) *Compiler {
	c := &Compiler{
		Errors:  make([]string, 0),
		scanner: lexer.NewLexer(src),
		locals:  make([]local, 0),
	}
	c.initRules()
	return c
}

// initRules builds the token → (prefix, infix, precedence) table.
// Token kinds absent from the table (property access, lambdas, pipes,
// append and step operators) are tree-walk-only surface; using one in
// bytecode mode is an ordinary compile error: "Expect expression." where
// it would start an expression, and otherwise the enclosing statement's
// missing-token error (e.g. "Expect ';' after value."), since an absent
// infix token ends the expression.
func (c *Compiler) initRules() {
	c.rules = map[lexer.TokenType]parseRule{
		lexer.LEFT_PAREN:    {prefix: c.grouping},
		lexer.MINUS:         {prefix: c.unary, infix: c.binary, prec: precTerm},
		lexer.PLUS:          {infix: c.binary, prec: precTerm},
		lexer.SLASH:         {infix: c.binary, prec: precFactor},
		lexer.STAR:          {infix: c.binary, prec: precFactor},
		lexer.BANG:          {prefix: c.unary},
		lexer.BANG_EQUAL:    {infix: c.binary, prec: precEquality},
		lexer.EQUAL_EQUAL:   {infix: c.binary, prec: precEquality},
		lexer.GREATER:       {infix: c.binary, prec: precComparison},
		lexer.GREATER_EQUAL: {infix: c.binary, prec: precComparison},
		lexer.LESS:          {infix: c.binary, prec: precComparison},
		lexer.LESS_EQUAL:    {infix: c.binary, prec: precComparison},
		lexer.IDENTIFIER:    {prefix: c.variable},
		lexer.STRING:        {prefix: c.stringLiteral},
		lexer.NUMBER:        {prefix: c.number},
		lexer.AND:           {infix: c.and, prec: precAnd},
		lexer.OR:            {infix: c.or, prec: precOr},
		lexer.FALSE:         {prefix: c.literal},
		lexer.TRUE:          {prefix: c.literal},
		lexer.NIL:           {prefix: c.literal},
	}
}

// Compile translates the whole source into a chunk. The chunk is
// returned even when errors were recorded; HadError distinguishes.
func (c *Compiler) Compile() *chunk.Chunk {
	c.chunk = chunk.NewChunk()
	c.advance()
	for !c.match(lexer.END_OF_FILE) {
		c.declaration()
	}
	return c.chunk
}

// HadError reports whether any compile error was recorded.
func (c *Compiler) HadError() bool {
	return c.hadError
}

// --- token plumbing ---

func (c *Compiler) advance() {
	c.previous = c.current
	for {
		c.current = c.scanner.ScanSingle()
		if c.current.Type != lexer.ERROR {
			break
		}
		c.errorAtCurrent(c.current.Lexeme)
	}
}

func (c *Compiler) consume(tokenType lexer.TokenType, msg string) {
	if c.current.Type == tokenType {
		c.advance()
		return
	}
	c.errorAtCurrent(msg)
}

func (c *Compiler) check(tokenType lexer.TokenType) bool {
	return c.current.Type == tokenType
}

func (c *Compiler) match(tokenType lexer.TokenType) bool {
	if !c.check(tokenType) {
		return false
	}
	c.advance()
	return true
}

// --- emission helpers ---

func (c *Compiler) emitByte(b byte) {
	c.chunk.WriteByte(b, c.previous.Line)
}

func (c *Compiler) emitOp(op chunk.OpCode) {
	c.chunk.WriteOp(op, c.previous.Line)
}

func (c *Compiler) emitOps(op1, op2 chunk.OpCode) {
	c.emitOp(op1)
	c.emitOp(op2)
}

func (c *Compiler) emitOpByte(op chunk.OpCode, b byte) {
	c.emitOp(op)
	c.emitByte(b)
}

func (c *Compiler) emitConstant(value objects.SpicyObject) {
	c.emitOpByte(chunk.OpConstant, c.makeConstant(value))
}

// emitJump emits a forward jump with a placeholder 16-bit offset and
// returns the offset of the operand for later patching.
func (c *Compiler) emitJump(op chunk.OpCode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunk.Count() - 2
}

// patchJump back-patches a forward jump to land just past the current
// instruction.
func (c *Compiler) patchJump(offset int) {
	// -2 adjusts for the operand bytes themselves
	jump := c.chunk.Count() - offset - 2
	if jump > math.MaxUint16 {
		c.error("Too much code to jump over.")
	}
	c.chunk.SetByte(offset, byte(jump>>8))
	c.chunk.SetByte(offset+1, byte(jump))
}

// emitLoop emits a backward jump to loopStart.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(chunk.OpLoop)
	offset := c.chunk.Count() - loopStart + 2
	if offset > math.MaxUint16 {
		c.error("Loop body too large.")
	}
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

func (c *Compiler) makeConstant(value objects.SpicyObject) byte {
	index := c.chunk.AddConstant(value)
	if index >= chunk.MaxConstants {
		c.error("Too many constants in one chunk.")
		return 0
	}
	return byte(index)
}

// --- error reporting ---

func (c *Compiler) error(msg string) {
	c.errorAt(c.previous, msg)
}

func (c *Compiler) errorAtCurrent(msg string) {
	c.errorAt(c.current, msg)
}

// errorAt records a compile error once per panic; in panic mode further
// errors stay silent until a synchronization point.
func (c *Compiler) errorAt(token lexer.Token, msg string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	c.hadError = true

	var report string
	switch token.Type {
	case lexer.END_OF_FILE:
		report = fmt.Sprintf("[line %d] Error at end: %s", token.Line, msg)
	case lexer.ERROR:
		report = fmt.Sprintf("[line %d] Error: %s", token.Line, msg)
	default:
		report = fmt.Sprintf("[line %d] Error at '%s': %s", token.Line, token.Lexeme, msg)
	}
	c.Errors = append(c.Errors, report)
}

// synchronize discards tokens until a statement boundary.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Type != lexer.END_OF_FILE {
		if c.previous.Type == lexer.SEMICOLON {
			return
		}
		switch c.current.Type {
		case lexer.CLASS, lexer.FUN, lexer.VAR, lexer.FOR,
			lexer.IF, lexer.WHILE, lexer.PRINT, lexer.RETURN:
			return
		}
		c.advance()
	}
}

// --- declarations and statements ---

func (c *Compiler) declaration() {
	if c.match(lexer.VAR) {
		c.varDeclaration()
	} else {
		c.statement()
	}
	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.match(lexer.EQUAL) {
		c.expression()
	} else {
		c.emitOp(chunk.OpNil)
	}
	c.consume(lexer.SEMICOLON, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(lexer.PRINT):
		c.printStatement()
	case c.match(lexer.IF):
		c.ifStatement()
	case c.match(lexer.WHILE):
		c.whileStatement()
	case c.match(lexer.FOR):
		c.forStatement()
	case c.match(lexer.LEFT_BRACE):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(lexer.SEMICOLON, "Expect ';' after value.")
	c.emitOp(chunk.OpPrint)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(lexer.SEMICOLON, "Expect ';' after expression.")
	c.emitOp(chunk.OpPop)
}

func (c *Compiler) block() {
	for !c.check(lexer.RIGHT_BRACE) && !c.check(lexer.END_OF_FILE) {
		c.declaration()
	}
	c.consume(lexer.RIGHT_BRACE, "Expect '}' after block.")
}

// ifStatement compiles `if` with a patched conditional jump over the
// then branch and an unconditional jump over the else branch.
func (c *Compiler) ifStatement() {
	c.consume(lexer.LEFT_PAREN, "Expect '(' after 'if'.")
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	elseJump := c.emitJump(chunk.OpJump)

	c.patchJump(thenJump)
	c.emitOp(chunk.OpPop)
	if c.match(lexer.ELSE) {
		c.statement()
	}
	c.patchJump(elseJump)
}

// whileStatement records the loop start before the condition and loops
// back to it after the body.
func (c *Compiler) whileStatement() {
	loopStart := c.chunk.Count()
	c.consume(lexer.LEFT_PAREN, "Expect '(' after 'while'.")
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitOp(chunk.OpPop)
}

// forStatement compiles `for (init; cond; incr) body` with the same
// jump machinery as while: the increment clause compiles before the
// body textually but runs after it via a pair of jumps.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.consume(lexer.LEFT_PAREN, "Expect '(' after 'for'.")

	// initializer clause
	if c.match(lexer.SEMICOLON) {
		// no initializer
	} else if c.match(lexer.VAR) {
		c.varDeclaration()
	} else {
		c.expressionStatement()
	}

	loopStart := c.chunk.Count()

	// condition clause
	exitJump := -1
	if !c.match(lexer.SEMICOLON) {
		c.expression()
		c.consume(lexer.SEMICOLON, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitOp(chunk.OpPop)
	}

	// increment clause
	if !c.match(lexer.RIGHT_PAREN) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := c.chunk.Count()
		c.expression()
		c.emitOp(chunk.OpPop)
		c.consume(lexer.RIGHT_PAREN, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitOp(chunk.OpPop)
	}
	c.endScope()
}

// --- expressions ---

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence consumes the prefix action of the current token,
// then keeps consuming infix actions while the next token binds at
// least as tightly as prec. canAssign threads through the actions so
// only the top-level lhs of an assignment emits a SET variant.
func (c *Compiler) parsePrecedence(prec precedence) {
	c.advance()
	rule := c.rules[c.previous.Type]
	if rule.prefix == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := prec <= precAssignment
	rule.prefix(canAssign)

	for prec <= c.rules[c.current.Type].prec {
		c.advance()
		c.rules[c.previous.Type].infix(canAssign)
	}

	if canAssign && c.match(lexer.EQUAL) {
		c.error("Invalid assignment target.")
	}
}

func (c *Compiler) grouping(bool) {
	c.expression()
	c.consume(lexer.RIGHT_PAREN, "Expect ')' after expression.")
}

func (c *Compiler) number(bool) {
	value := c.previous.Literal.(float64)
	c.emitConstant(objects.NewNum(value))
}

func (c *Compiler) stringLiteral(bool) {
	value := c.previous.Literal.(string)
	c.emitConstant(objects.NewStr(value))
}

func (c *Compiler) literal(bool) {
	switch c.previous.Type {
	case lexer.FALSE:
		c.emitOp(chunk.OpFalse)
	case lexer.TRUE:
		c.emitOp(chunk.OpTrue)
	case lexer.NIL:
		c.emitOp(chunk.OpNil)
	}
}

func (c *Compiler) unary(bool) {
	op := c.previous.Type
	c.parsePrecedence(precUnary)
	switch op {
	case lexer.MINUS:
		c.emitOp(chunk.OpNegate)
	case lexer.BANG:
		c.emitOp(chunk.OpNot)
	}
}

func (c *Compiler) binary(bool) {
	op := c.previous.Type
	rule := c.rules[op]
	c.parsePrecedence(rule.prec + 1)

	switch op {
	case lexer.PLUS:
		c.emitOp(chunk.OpAdd)
	case lexer.MINUS:
		c.emitOp(chunk.OpSubtract)
	case lexer.STAR:
		c.emitOp(chunk.OpMultiply)
	case lexer.SLASH:
		c.emitOp(chunk.OpDivide)
	case lexer.EQUAL_EQUAL:
		c.emitOp(chunk.OpEqual)
	case lexer.BANG_EQUAL:
		c.emitOps(chunk.OpEqual, chunk.OpNot)
	case lexer.GREATER:
		c.emitOp(chunk.OpGreater)
	case lexer.GREATER_EQUAL:
		c.emitOps(chunk.OpLess, chunk.OpNot)
	case lexer.LESS:
		c.emitOp(chunk.OpLess)
	case lexer.LESS_EQUAL:
		c.emitOps(chunk.OpGreater, chunk.OpNot)
	}
}

// and compiles short-circuit `and`: the right operand only evaluates
// when the left was truthy.
func (c *Compiler) and(bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitOp(chunk.OpPop)
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or compiles short-circuit `or`: a falsy left falls through to the
// right operand, a truthy left jumps over it.
func (c *Compiler) or(bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)

	c.patchJump(elseJump)
	c.emitOp(chunk.OpPop)

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.previous, canAssign)
}

// namedVariable compiles a read or write of a name: a local slot when
// the locals vector has it, a global otherwise.
func (c *Compiler) namedVariable(name lexer.Token, canAssign bool) {
	var getOp, setOp chunk.OpCode
	var arg byte

	slot := c.resolveLocal(name)
	if slot != -1 {
		getOp, setOp = chunk.OpGetLocal, chunk.OpSetLocal
		arg = byte(slot)
	} else {
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
		arg = c.identifierConstant(name)
	}

	if canAssign && c.match(lexer.EQUAL) {
		c.expression()
		c.emitOpByte(setOp, arg)
	} else {
		c.emitOpByte(getOp, arg)
	}
}

// --- variables and scoping ---

// parseVariable consumes the name and returns the constant index for a
// global, or 0 after declaring a scoped local.
func (c *Compiler) parseVariable(errMsg string) byte {
	c.consume(lexer.IDENTIFIER, errMsg)

	c.declareVariable()
	if c.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.previous)
}

// identifierConstant interns the name in the constant pool.
func (c *Compiler) identifierConstant(name lexer.Token) byte {
	return c.makeConstant(objects.NewStr(name.Lexeme))
}

// declareVariable registers a scoped local; globals are late-bound and
// skip the locals vector entirely.
func (c *Compiler) declareVariable() {
	if c.scopeDepth == 0 {
		return
	}
	name := c.previous
	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.depth != -1 && l.depth < c.scopeDepth {
			break
		}
		if l.name.Lexeme == name.Lexeme {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

// addLocal reserves the next stack slot for the name. The depth stays
// the -1 sentinel until markInitialized.
func (c *Compiler) addLocal(name lexer.Token) {
	if len(c.locals) >= chunk.MaxConstants {
		c.error("Too many local variables in function.")
		return
	}
	c.locals = append(c.locals, local{name: name, depth: -1})
}

func (c *Compiler) markInitialized() {
	c.locals[len(c.locals)-1].depth = c.scopeDepth
}

// defineVariable emits DEFINE_GLOBAL at top level; a scoped local's
// value already sits in its slot, so only the bookkeeping flips.
func (c *Compiler) defineVariable(global byte) {
	if c.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(chunk.OpDefineGlobal, global)
}

// resolveLocal walks the locals vector newest to oldest; the first
// match wins. A match still carrying the -1 sentinel is a read of the
// local inside its own initializer.
func (c *Compiler) resolveLocal(name lexer.Token) int {
	for i := len(c.locals) - 1; i >= 0; i-- {
		l := c.locals[i]
		if l.name.Lexeme == name.Lexeme {
			if l.depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}

func (c *Compiler) beginScope() {
	c.scopeDepth++
}

// endScope pops the locals declared in the closing scope, emitting a
// POP for each slot.
func (c *Compiler) endScope() {
	c.scopeDepth--
	for len(c.locals) > 0 && c.locals[len(c.locals)-1].depth > c.scopeDepth {
		c.emitOp(chunk.OpPop)
		c.locals = c.locals[:len(c.locals)-1]
	}
}
