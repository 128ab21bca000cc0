// coelute - SEC-MS co-elution analysis toolkit
package main

import (
	"fmt"
	"os"

	"github.com/coelute/coelute/cmd/coelute/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
