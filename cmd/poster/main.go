// Command poster submits batches of Reddit posts with mandatory pacing,
// session limits, and validation. Dry-run is the default everywhere; pass
// --live to submit for real.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
