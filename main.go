/*
File    : saga/main.go
*/

// The saga binary: an interpreter for the SAGA programming language.
// All behavior lives in the cli package; see `saga --help`.
package main

import "github.com/saga-lang/saga/cli"

func main() {
	cli.Execute()
}
