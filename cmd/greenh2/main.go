// Command greenh2 runs the green hydrogen site optimization service and its
// operational tools: the HTTP API, one-shot optimization runs, database
// seeding, and CSV data import.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
