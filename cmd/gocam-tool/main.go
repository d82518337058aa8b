// Command gocam-tool inspects GO-CAM models exported from Noctua: it reports
// annotation holes, prints structural statistics and dumps fact tuples.
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errHolesFound) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
