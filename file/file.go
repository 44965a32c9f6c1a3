/*
File : spicy/file/file.go

Package file loads SpicyLang scripts from disk and runs them through
either execution engine. Only an I/O failure opening the script is
fatal; compile and runtime errors are reported on the error stream and
leave the process exit code at zero.
*/
package file

import (
	"fmt"
	"io"
	"os"

	"github.com/spicylang/spicy/compiler"
	"github.com/spicylang/spicy/eval"
	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/parser"
	"github.com/spicylang/spicy/resolver"
	"github.com/spicylang/spicy/vm"
)

// Options selects the engine and the debugging surfaces for a script
// run.
type Options struct {
	Treewalk     bool // Use the tree-walk engine instead of the VM
	DumpBytecode bool // Disassemble the chunk before running it
	Trace        bool // Trace VM execution per instruction
	DumpAST      bool // Print the parsed AST before running
}

// Run loads and executes the script at path. The returned error is
// non-nil only for I/O failures; language-level errors are written to
// errOut.
func Run(path string, out, errOut io.Writer, opts Options) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not open script %s: %w", path, err)
	}

	if opts.Treewalk {
		runTreeWalk(string(src), out, errOut, opts)
		return nil
	}
	runByteCode(string(src), out, errOut, opts)
	return nil
}

// runTreeWalk drives the lexer → parser → resolver → evaluator
// pipeline. Each front-end stage reports its collected errors and, when
// any surfaced, the next stage does not run.
func runTreeWalk(src string, out, errOut io.Writer, opts Options) {
	lex := lexer.NewLexer(src)
	tokens := lex.ScanTokens()
	if reportErrors(errOut, lex.Errors) {
		return
	}

	par := parser.NewParser(tokens)
	program := par.ParseProgram()
	if reportErrors(errOut, par.Errors) {
		return
	}

	if opts.DumpAST {
		printer := &parser.ASTPrinter{}
		fmt.Fprint(out, printer.PrintProgram(program))
	}

	evaluator := eval.NewEvaluator(out)
	res := resolver.NewResolver(evaluator)
	res.ResolveProgram(program)
	if reportErrors(errOut, res.Errors) {
		return
	}

	if err := evaluator.ExecProgram(program); err != nil {
		fmt.Fprintln(errOut, err.Error())
	}
}

// runByteCode compiles the whole source into one chunk and hands it to
// a fresh (script-mode) VM. The VM reports its own runtime errors.
func runByteCode(src string, out, errOut io.Writer, opts Options) {
	if opts.DumpAST {
		lex := lexer.NewLexer(src)
		par := parser.NewParser(lex.ScanTokens())
		program := par.ParseProgram()
		printer := &parser.ASTPrinter{}
		fmt.Fprint(out, printer.PrintProgram(program))
	}

	comp := compiler.NewCompiler(src)
	c := comp.Compile()
	if reportErrors(errOut, comp.Errors) {
		return
	}

	if opts.DumpBytecode {
		c.Disassemble(out, "script")
	}

	machine := vm.NewVM(out, errOut, opts.Trace, false)
	_ = machine.Execute(c)
}

func reportErrors(errOut io.Writer, errs []string) bool {
	for _, e := range errs {
		fmt.Fprintln(errOut, e)
	}
	return len(errs) > 0
}
