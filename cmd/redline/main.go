// main holds the entry logic for the redline CLI.
package main

import (
	"fmt"
	"os"

	"github.com/redlinelab/redline/cmd"
	"github.com/redlinelab/redline/internal/iostore"
)

// main is the entry point for the redline CLI.
// It wires the result store into the command tree and runs it.
func main() {
	cmd.SetStoreManager(iostore.Manager)

	err := cmd.Execute()
	iostore.CloseStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}
