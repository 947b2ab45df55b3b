/*
File    : saga/cli/cli.go
*/

// Package cli implements the command-line surface of the saga binary.
// With no arguments it launches the interactive REPL; with one argument it
// runs that script; anything else is a usage error. Exit codes follow the
// interpreter's convention: 0 success, 65 static error, 70 runtime error,
// 1 usage or file error.
package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/saga-lang/saga/interpreter"
	"github.com/saga-lang/saga/repl"
)

// Version is the interpreter version reported by --version.
const Version = "v1.0.0"

// Exit codes of the saga binary.
const (
	ExitOK           = 0  // Clean run
	ExitUsage        = 1  // Bad invocation or unreadable script
	ExitStaticError  = 65 // Lex, parse, or resolution error
	ExitRuntimeError = 70 // Runtime error
)

var redColor = color.New(color.FgRed)

// rootCmd is the only command: `saga [script]`.
var rootCmd = &cobra.Command{
	Use:     "saga [script]",
	Short:   "The SAGA programming language interpreter",
	Long:    "SAGA is a small, dynamically-typed, indentation-structured scripting language.\nRun a script by passing its path, or start the interactive REPL with no arguments.",
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			runFile(args[0])
			return
		}
		session := repl.NewRepl(Version)
		if err := session.Start(os.Stdout); err != nil {
			redColor.Fprintf(os.Stderr, "Could not start the REPL: %v\n", err)
			os.Exit(ExitUsage)
		}
	},
}

// Execute runs the CLI. Argument errors print cobra's usage line and exit
// non-zero.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsage)
	}
}

// runFile reads and interprets a script, then maps the sink flags to the
// process exit code.
func runFile(path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(os.Stderr, "Could not read file '%s': %v\n", path, err)
		os.Exit(ExitUsage)
	}

	saga := interpreter.NewSaga()
	saga.Run(string(content), false)

	if saga.Sink.HadError {
		os.Exit(ExitStaticError)
	}
	if saga.Sink.HadRuntimeError {
		os.Exit(ExitRuntimeError)
	}
}
