/*
File    : saga/repl/repl.go

Package repl implements the Read-Eval-Print Loop of the SAGA interpreter.
The REPL provides an interactive environment where users can:
- Enter SAGA code line by line
- See the value of a lone expression printed back immediately
- Navigate command history using arrow keys

The REPL uses the readline library for line editing and keeps one
interpreter instance alive for the whole session, so definitions persist
from line to line. A line that fails to parse only poisons itself: the
static error flag is cleared before the next prompt.
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/saga-lang/saga/interpreter"
)

// Color definitions for REPL output:
// - blueColor: separator lines
// - greenColor: the banner
// - yellowColor: version information
// - cyanColor: usage hints
var (
	blueColor   = color.New(color.FgBlue)
	greenColor  = color.New(color.FgGreen)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

// Prompt is the string shown before every input line.
const Prompt = "SAGA> "

// quitCommand ends the session when entered on its own.
const quitCommand = "q"

// Banner is the logo printed when the session starts.
const Banner = `
  ███████╗ █████╗  ██████╗  █████╗
  ██╔════╝██╔══██╗██╔════╝ ██╔══██╗
  ███████╗███████║██║  ███╗███████║
  ╚════██║██╔══██║██║   ██║██╔══██║
  ███████║██║  ██║╚██████╔╝██║  ██║
  ╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝
`

// separator is the horizontal rule around the banner.
const separator = "----------------------------------------------"

// Repl is an interactive session over one interpreter instance.
type Repl struct {
	Version string            // Version string shown in the banner
	Saga    *interpreter.Saga // The session's interpreter
}

// NewRepl creates a session with a fresh interpreter.
func NewRepl(version string) *Repl {
	return &Repl{
		Version: version,
		Saga:    interpreter.NewSaga(),
	}
}

// printBannerInfo writes the logo and usage hints.
func (r *Repl) printBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", separator)
	greenColor.Fprintf(writer, "%s\n", Banner)
	blueColor.Fprintf(writer, "%s\n", separator)
	yellowColor.Fprintf(writer, "SAGA %s\n", r.Version)
	cyanColor.Fprintf(writer, "Type your code and press enter\n")
	cyanColor.Fprintf(writer, "Type '%s' to quit\n", quitCommand)
	blueColor.Fprintf(writer, "%s\n", separator)
}

// Start runs the loop until the quit command or EOF (Ctrl+D). Every line
// runs through the full pipeline in REPL mode, and the static error flag is
// reset afterwards so the next line starts clean.
func (r *Repl) Start(writer io.Writer) error {
	r.printBannerInfo(writer)

	rl, err := readline.New(Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// EOF or interrupt ends the session.
			writer.Write([]byte("Good Bye!\n"))
			return nil
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == quitCommand {
			writer.Write([]byte("Good Bye!\n"))
			return nil
		}

		rl.SaveHistory(line)

		r.Saga.Run(line, true)
		r.Saga.Sink.Reset()
		r.Saga.Sink.HadRuntimeError = false
	}
}
