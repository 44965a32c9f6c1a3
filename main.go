/*
File : spicy/main.go

Package main is the entry point of the SpicyLang interpreter.
Modes of operation:
 1. Script mode (default): execute a SpicyLang source file on the
    bytecode engine, or on the tree-walk engine with --treewalk
 2. REPL mode (--repl, or no script path): interactive session
    retaining state across inputs

Debugging surfaces: --bytecode dumps the compiled chunk, --trace traces
VM execution per step, --ast prints the parsed tree.
*/
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/spicylang/spicy/file"
	"github.com/spicylang/spicy/repl"
)

// VERSION is the current version of the SpicyLang interpreter.
var VERSION = "v0.1.0"

// LICENSE names the software license.
var LICENSE = "MIT"

// PROMPT is the command prompt displayed in REPL mode.
var PROMPT = "spicy >>> "

// BANNER is the ASCII art logo displayed when starting the REPL.
var BANNER = `
  ___  _ __  _  ___ _   _
 / __|| '_ \| |/ __| | | |
 \__ \| |_) | | (__| |_| |
 |___/| .__/|_|\___|\__, |
      |_|           |___/
`

// LINE is a separator line used for visual formatting in the REPL.
var LINE = "----------------------------------------------------------------"

var redColor = color.New(color.FgRed)

func main() {
	var (
		replMode     bool
		treewalk     bool
		dumpBytecode bool
		trace        bool
		dumpAST      bool
	)

	rootCmd := &cobra.Command{
		Use:     "spicy [script]",
		Short:   "SpicyLang interpreter",
		Long:    "SpicyLang: a small dynamically-typed scripting language with a tree-walk interpreter and a bytecode VM.",
		Version: VERSION,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if replMode || len(args) == 0 {
				r := repl.NewRepl(BANNER, VERSION, LINE, LICENSE, PROMPT)
				r.Treewalk = treewalk
				r.Trace = trace
				r.DumpBytecode = dumpBytecode
				return r.Start(cmd.OutOrStdout())
			}
			return file.Run(args[0], cmd.OutOrStdout(), cmd.ErrOrStderr(), file.Options{
				Treewalk:     treewalk,
				DumpBytecode: dumpBytecode,
				Trace:        trace,
				DumpAST:      dumpAST,
			})
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.Flags().BoolVar(&replMode, "repl", false, "start the interactive REPL")
	rootCmd.Flags().BoolVar(&treewalk, "treewalk", false, "use the tree-walk engine instead of the bytecode VM")
	rootCmd.Flags().BoolVar(&dumpBytecode, "bytecode", false, "dump the compiled chunk before execution")
	rootCmd.Flags().BoolVar(&trace, "trace", false, "trace VM execution (stack and instruction per step)")
	rootCmd.Flags().BoolVar(&dumpAST, "ast", false, "print the parsed AST before execution")

	if err := rootCmd.Execute(); err != nil {
		redColor.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
