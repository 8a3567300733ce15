// cmd/nomad/main.go
package main

import (
	"fmt"
	"os"

	"github.com/nomad-labs/nomad-cli/internal/adapters/driving/cli"
)

// main starts the nomad CLI application by delegating to the cobra
// root command defined in the cli package.
func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
