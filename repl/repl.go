/*
File : spicy/repl/repl.go

Package repl implements the Read-Eval-Print Loop for the SpicyLang
interpreter. The REPL provides an interactive environment where users
can enter statements line by line, see immediate results, and navigate
command history with the arrow keys. Input is normalized: a line ending
in neither ';' nor '}' gets a ';' appended before scanning.

Both execution engines are available. The tree-walk session keeps one
resolver/evaluator pair alive so definitions persist across inputs; the
bytecode session keeps one VM so its globals table persists across
chunks. The session ends on `exit();` (or end of input).
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/spicylang/spicy/compiler"
	"github.com/spicylang/spicy/eval"
	"github.com/spicylang/spicy/lexer"
	"github.com/spicylang/spicy/parser"
	"github.com/spicylang/spicy/resolver"
	"github.com/spicylang/spicy/vm"
)

// Color definitions for REPL output:
// - blueColor: decorative separator lines
// - yellowColor: expression results and version info
// - redColor: error messages
// - greenColor: the banner
// - cyanColor: informational messages and instructions
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// exitCommand ends the session.
const exitCommand = "exit();"

// Repl encapsulates the configuration of one interactive session.
type Repl struct {
	Banner  string // ASCII art banner displayed at startup
	Version string // Version string of the interpreter
	Line    string // Separator line for visual formatting
	License string // Software license information
	Prompt  string // Command prompt shown to the user

	Treewalk     bool // Use the tree-walk engine instead of the VM
	Trace        bool // Trace VM execution per instruction
	DumpBytecode bool // Disassemble each chunk before running it
}

// NewRepl creates a REPL with the given presentation strings.
func NewRepl(banner, version, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to SpicyLang!")
	if r.Treewalk {
		cyanColor.Fprintf(writer, "%s\n", "Engine: tree-walk")
	} else {
		cyanColor.Fprintf(writer, "%s\n", "Engine: bytecode")
	}
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type 'exit();' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start begins the REPL main loop, reading lines with readline and
// writing results to writer until exit.
func (r *Repl) Start(writer io.Writer) error {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	if r.Treewalk {
		r.loopTreewalk(rl, writer)
	} else {
		r.loopBytecode(rl, writer)
	}
	cyanColor.Fprintln(writer, "Goodbye!")
	return nil
}

// nextLine reads one input line, appending ';' when the line ends in
// neither ';' nor '}'. EOF (Ctrl+D) ends the session like exit();.
func (r *Repl) nextLine(rl *readline.Instance) (string, bool) {
	line, err := rl.Readline()
	if err != nil {
		return "", false
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", true
	}
	rl.SaveHistory(line)
	if !strings.HasSuffix(line, ";") && !strings.HasSuffix(line, "}") {
		line += ";"
	}
	return line, true
}

// loopTreewalk runs the session on the tree-walk engine. Resolver and
// evaluator state persist across inputs, so functions and variables
// defined earlier stay visible.
func (r *Repl) loopTreewalk(rl *readline.Instance, writer io.Writer) {
	evaluator := eval.NewEvaluator(writer)
	res := resolver.NewResolver(evaluator)

	for {
		line, ok := r.nextLine(rl)
		if !ok || line == exitCommand {
			return
		}
		if line == "" {
			continue
		}

		lex := lexer.NewLexer(line)
		tokens := lex.ScanTokens()
		if r.printErrors(writer, lex.Errors) {
			continue
		}

		par := parser.NewParser(tokens)
		program := par.ParseProgram()
		if r.printErrors(writer, par.Errors) {
			continue
		}

		before := len(res.Errors)
		res.ResolveProgram(program)
		if r.printErrors(writer, res.Errors[before:]) {
			continue
		}

		failed := false
		for _, stmt := range program {
			if _, err := evaluator.ExecStmt(stmt); err != nil {
				redColor.Fprintln(writer, err.Error())
				failed = true
				break
			}
		}

		// echo the value of a trailing expression statement
		if !failed && len(program) > 0 {
			if _, isExpr := program[len(program)-1].(*parser.ExprStmt); isExpr {
				yellowColor.Fprintln(writer, evaluator.LastValue.ToString())
			}
		}
	}
}

// loopBytecode runs the session on the bytecode engine. The VM keeps
// its globals table and stack base across chunks.
func (r *Repl) loopBytecode(rl *readline.Instance, writer io.Writer) {
	machine := vm.NewVM(writer, writer, r.Trace, true)

	for {
		line, ok := r.nextLine(rl)
		if !ok || line == exitCommand {
			return
		}
		if line == "" {
			continue
		}

		comp := compiler.NewCompiler(line)
		c := comp.Compile()
		if r.printErrors(writer, comp.Errors) {
			continue
		}

		if r.DumpBytecode {
			c.Disassemble(writer, "repl")
		}

		// the VM reports its own runtime errors on writer
		_ = machine.Execute(c)
	}
}

// printErrors writes the collected errors in red, reporting whether
// there were any.
func (r *Repl) printErrors(writer io.Writer, errs []string) bool {
	for _, e := range errs {
		redColor.Fprintln(writer, e)
	}
	return len(errs) > 0
}
