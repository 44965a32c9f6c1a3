/*
File : spicy/chunk/debug.go
*/
package chunk

import (
	"fmt"
	"io"
)

// Disassemble writes a readable dump of the whole chunk under the given
// header. It backs the --bytecode flag and the per-step --trace output.
func (c *Chunk) Disassemble(w io.Writer, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = c.DisassembleInstruction(w, offset)
	}
}

// DisassembleInstruction writes one instruction and returns the offset
// of the next one.
func (c *Chunk) DisassembleInstruction(w io.Writer, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	line := c.GetLine(offset)
	if offset > 0 && line == c.GetLine(offset-1) {
		fmt.Fprintf(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", line)
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant:
		return c.constantInstruction(w, "OP_CONSTANT", offset)
	case OpNil:
		return c.simpleInstruction(w, "OP_NIL", offset)
	case OpTrue:
		return c.simpleInstruction(w, "OP_TRUE", offset)
	case OpFalse:
		return c.simpleInstruction(w, "OP_FALSE", offset)
	case OpPop:
		return c.simpleInstruction(w, "OP_POP", offset)
	case OpGetLocal:
		return c.byteInstruction(w, "OP_GET_LOCAL", offset)
	case OpSetLocal:
		return c.byteInstruction(w, "OP_SET_LOCAL", offset)
	case OpGetGlobal:
		return c.constantInstruction(w, "OP_GET_GLOBAL", offset)
	case OpDefineGlobal:
		return c.constantInstruction(w, "OP_DEFINE_GLOBAL", offset)
	case OpSetGlobal:
		return c.constantInstruction(w, "OP_SET_GLOBAL", offset)
	case OpGetUpvalue:
		return c.byteInstruction(w, "OP_GET_UPVALUE", offset)
	case OpSetUpvalue:
		return c.byteInstruction(w, "OP_SET_UPVALUE", offset)
	case OpGetProperty:
		return c.constantInstruction(w, "OP_GET_PROPERTY", offset)
	case OpSetProperty:
		return c.constantInstruction(w, "OP_SET_PROPERTY", offset)
	case OpGetSuper:
		return c.constantInstruction(w, "OP_GET_SUPER", offset)
	case OpEqual:
		return c.simpleInstruction(w, "OP_EQUAL", offset)
	case OpGreater:
		return c.simpleInstruction(w, "OP_GREATER", offset)
	case OpLess:
		return c.simpleInstruction(w, "OP_LESS", offset)
	case OpAdd:
		return c.simpleInstruction(w, "OP_ADD", offset)
	case OpSubtract:
		return c.simpleInstruction(w, "OP_SUBTRACT", offset)
	case OpMultiply:
		return c.simpleInstruction(w, "OP_MULTIPLY", offset)
	case OpDivide:
		return c.simpleInstruction(w, "OP_DIVIDE", offset)
	case OpNot:
		return c.simpleInstruction(w, "OP_NOT", offset)
	case OpNegate:
		return c.simpleInstruction(w, "OP_NEGATE", offset)
	case OpPrint:
		return c.simpleInstruction(w, "OP_PRINT", offset)
	case OpJump:
		return c.jumpInstruction(w, "OP_JUMP", 1, offset)
	case OpJumpIfFalse:
		return c.jumpInstruction(w, "OP_JUMP_IF_FALSE", 1, offset)
	case OpLoop:
		return c.jumpInstruction(w, "OP_LOOP", -1, offset)
	case OpCall:
		return c.byteInstruction(w, "OP_CALL", offset)
	case OpInvoke:
		return c.invokeInstruction(w, "OP_INVOKE", offset)
	case OpSuperInvoke:
		return c.invokeInstruction(w, "OP_SUPER_INVOKE", offset)
	case OpClosure:
		return c.constantInstruction(w, "OP_CLOSURE", offset)
	case OpCloseUpvalue:
		return c.simpleInstruction(w, "OP_CLOSE_UPVALUE", offset)
	case OpReturn:
		return c.simpleInstruction(w, "OP_RETURN", offset)
	case OpClass:
		return c.constantInstruction(w, "OP_CLASS", offset)
	case OpInherit:
		return c.simpleInstruction(w, "OP_INHERIT", offset)
	case OpMethod:
		return c.constantInstruction(w, "OP_METHOD", offset)
	}
	fmt.Fprintf(w, "Unknown opcode: %d\n", byte(op))
	return offset + simpleInstructionSize
}

func (c *Chunk) simpleInstruction(w io.Writer, name string, offset int) int {
	fmt.Fprintf(w, "%s\n", name)
	return offset + simpleInstructionSize
}

func (c *Chunk) constantInstruction(w io.Writer, name string, offset int) int {
	constant := c.Code[offset+1]
	fmt.Fprintf(w, "%s %4d '%s'\n", name, constant, c.Constants[constant].ToString())
	return offset + constantInstructionSize
}

func (c *Chunk) byteInstruction(w io.Writer, name string, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%s %4d\n", name, slot)
	return offset + byteInstructionSize
}

func (c *Chunk) jumpInstruction(w io.Writer, name string, sign int, offset int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	fmt.Fprintf(w, "%s %4d -> %d\n", name, offset, offset+jumpInstructionSize+sign*jump)
	return offset + jumpInstructionSize
}

func (c *Chunk) invokeInstruction(w io.Writer, name string, offset int) int {
	constant := c.Code[offset+1]
	argCount := c.Code[offset+2]
	fmt.Fprintf(w, "%s (%d args) %4d '%s'\n", name, argCount, constant, c.Constants[constant].ToString())
	return offset + invokeInstructionSize
}
