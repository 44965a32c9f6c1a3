/*
File : spicy/vm/vm.go
*/

// Package vm implements SpicyLang's stack-based bytecode virtual
// machine. Execution is a dispatch loop over one chunk: constants,
// truthy/falsy primitives, arithmetic, comparisons, logic, print, pop,
// global define/get/set, local get/set, branches, loop and return. The
// reserved opcodes (calls, closures, classes, upvalues, properties)
// halt with an unknown-opcode error; their encodings are stable but the
// reference VM does not execute them.
package vm

import (
	"fmt"
	"io"

	"github.com/spicylang/spicy/chunk"
	"github.com/spicylang/spicy/objects"
)

// VM holds the value stack, the globals table and the program counter.
// In REPL mode the globals and the stack survive across chunks (a
// runtime error clears the stack but keeps the globals); in script mode
// every Execute starts fresh.
type VM struct {
	Out    io.Writer
	ErrOut io.Writer

	stack   []objects.SpicyObject
	globals map[string]objects.SpicyObject
	pc      int

	trace  bool
	isREPL bool
}

// NewVM creates a VM. trace enables per-instruction disassembly and
// stack dumps on ErrOut; isREPL keeps state across chunks.
func NewVM(out, errOut io.Writer, trace, isREPL bool) *VM {
	vm := &VM{
		Out:    out,
		ErrOut: errOut,
		trace:  trace,
		isREPL: isREPL,
	}
	vm.reset(false)
	return vm
}

// Execute runs one chunk to completion or to the first runtime error.
// Runtime errors are reported on ErrOut with the source line resolved
// through the chunk's line table, and halt the chunk.
func (vm *VM) Execute(c *chunk.Chunk) error {
	vm.reset(vm.isREPL)

	for vm.pc < c.Count() {
		if vm.trace {
			vm.printStack()
			c.DisassembleInstruction(vm.ErrOut, vm.pc)
		}

		op := chunk.OpCode(vm.readByte(c))
		switch op {
		case chunk.OpConstant:
			vm.push(c.Constants[vm.readByte(c)])
		case chunk.OpNil:
			vm.push(objects.NilValue())
		case chunk.OpTrue:
			vm.push(objects.NewBoolean(true))
		case chunk.OpFalse:
			vm.push(objects.NewBoolean(false))
		case chunk.OpPop:
			vm.pop()
		case chunk.OpNegate:
			num, ok := vm.peek(0).(*objects.Num)
			if !ok {
				return vm.runtimeError(c, "Operand must be a number.")
			}
			vm.pop()
			vm.push(objects.NewNum(-num.Value))
		case chunk.OpNot:
			vm.push(objects.NewBoolean(!objects.IsTruthy(vm.pop())))
		case chunk.OpDefineGlobal:
			name := c.Constants[vm.readByte(c)].(*objects.Str).Value
			vm.globals[name] = vm.peek(0)
			vm.pop()
		case chunk.OpGetGlobal:
			name := c.Constants[vm.readByte(c)].(*objects.Str).Value
			value, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(c, fmt.Sprintf("Undefined variable '%s'.", name))
			}
			vm.push(value)
		case chunk.OpSetGlobal:
			name := c.Constants[vm.readByte(c)].(*objects.Str).Value
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(c, fmt.Sprintf("Undefined variable '%s'.", name))
			}
			vm.globals[name] = vm.peek(0)
		case chunk.OpGetLocal:
			slot := vm.readByte(c)
			vm.push(vm.stack[slot])
		case chunk.OpSetLocal:
			slot := vm.readByte(c)
			vm.stack[slot] = vm.peek(0)
		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(objects.NewBoolean(objects.AreEqual(a, b)))
		case chunk.OpGreater:
			a, b, err := vm.popNumOperands(c)
			if err != nil {
				return err
			}
			vm.push(objects.NewBoolean(a > b))
		case chunk.OpLess:
			a, b, err := vm.popNumOperands(c)
			if err != nil {
				return err
			}
			vm.push(objects.NewBoolean(a < b))
		case chunk.OpAdd:
			if err := vm.executeAdd(c); err != nil {
				return err
			}
		case chunk.OpSubtract:
			a, b, err := vm.popNumOperands(c)
			if err != nil {
				return err
			}
			vm.push(objects.NewNum(a - b))
		case chunk.OpMultiply:
			a, b, err := vm.popNumOperands(c)
			if err != nil {
				return err
			}
			vm.push(objects.NewNum(a * b))
		case chunk.OpDivide:
			a, b, err := vm.popNumOperands(c)
			if err != nil {
				return err
			}
			vm.push(objects.NewNum(a / b))
		case chunk.OpPrint:
			fmt.Fprintln(vm.Out, vm.pop().ToString())
		case chunk.OpJump:
			offset := vm.readShort(c)
			vm.pc += offset
		case chunk.OpJumpIfFalse:
			offset := vm.readShort(c)
			if !objects.IsTruthy(vm.peek(0)) {
				vm.pc += offset
			}
		case chunk.OpLoop:
			offset := vm.readShort(c)
			vm.pc -= offset
		case chunk.OpReturn:
			return nil
		default:
			return vm.runtimeError(c, fmt.Sprintf("Unknown opcode: %d.", byte(op)))
		}
	}
	return nil
}

// reset clears the program counter and, outside REPL mode, the stack
// and globals.
func (vm *VM) reset(keepState bool) {
	vm.pc = 0
	if keepState {
		return
	}
	vm.stack = make([]objects.SpicyObject, 0)
	vm.globals = make(map[string]objects.SpicyObject)
}

// Globals exposes the globals table for inspection.
func (vm *VM) Globals() map[string]objects.SpicyObject {
	return vm.globals
}

// StackSize reports the current stack depth.
func (vm *VM) StackSize() int {
	return len(vm.stack)
}

func (vm *VM) readByte(c *chunk.Chunk) byte {
	b := c.Code[vm.pc]
	vm.pc++
	return b
}

func (vm *VM) readShort(c *chunk.Chunk) int {
	b1 := int(c.Code[vm.pc])
	b2 := int(c.Code[vm.pc+1])
	vm.pc += 2
	return b1<<8 | b2
}

func (vm *VM) push(value objects.SpicyObject) {
	vm.stack = append(vm.stack, value)
}

func (vm *VM) pop() objects.SpicyObject {
	if len(vm.stack) == 0 {
		return objects.NilValue()
	}
	value := vm.stack[len(vm.stack)-1]
	vm.stack = vm.stack[:len(vm.stack)-1]
	return value
}

func (vm *VM) peek(distance int) objects.SpicyObject {
	return vm.stack[len(vm.stack)-1-distance]
}

// popNumOperands pops a numeric operand pair, reporting the shared
// type-mismatch error otherwise.
func (vm *VM) popNumOperands(c *chunk.Chunk) (float64, float64, error) {
	rnum, rok := vm.peek(0).(*objects.Num)
	lnum, lok := vm.peek(1).(*objects.Num)
	if !rok || !lok {
		return 0, 0, vm.runtimeError(c, "Operands must be numbers.")
	}
	vm.pop()
	vm.pop()
	return lnum.Value, rnum.Value, nil
}

// executeAdd implements OP_ADD: number+number or string+string.
func (vm *VM) executeAdd(c *chunk.Chunk) error {
	if rstr, ok := vm.peek(0).(*objects.Str); ok {
		if lstr, ok := vm.peek(1).(*objects.Str); ok {
			vm.pop()
			vm.pop()
			vm.push(objects.NewStr(lstr.Value + rstr.Value))
			return nil
		}
	}
	if rnum, ok := vm.peek(0).(*objects.Num); ok {
		if lnum, ok := vm.peek(1).(*objects.Num); ok {
			vm.pop()
			vm.pop()
			vm.push(objects.NewNum(lnum.Value + rnum.Value))
			return nil
		}
	}
	return vm.runtimeError(c, "Operands must be either numbers or strings.")
}

// runtimeError reports the message at the current line and clears the
// stack for the next chunk; outside REPL mode the globals are cleared too.
func (vm *VM) runtimeError(c *chunk.Chunk, msg string) error {
	line := c.GetLine(vm.pc - 1)
	err := fmt.Errorf("[line %d] Error: %s", line, msg)
	fmt.Fprintln(vm.ErrOut, err.Error())
	vm.reset(vm.isREPL)
	vm.stack = vm.stack[:0]
	return err
}

func (vm *VM) printStack() {
	fmt.Fprint(vm.ErrOut, "Stack: \t")
	for _, value := range vm.stack {
		fmt.Fprintf(vm.ErrOut, "[ %s ]", value.ToString())
	}
	fmt.Fprintln(vm.ErrOut)
}
