// Command tailscanctl runs scans and maintenance tasks against the same
// stores and collaborators the server uses.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
