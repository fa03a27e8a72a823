// Command placementctl runs the placement scoring rules offline, reading JSON
// requests from a file or stdin and printing JSON results.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
