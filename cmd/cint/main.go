// Command cint interprets a substantial subset of C directly from source.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-cint/cmd/cint/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
