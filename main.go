// The main package for the shadowbot executable.
package main

import (
	"github.com/shadowintel/shadowbot/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
