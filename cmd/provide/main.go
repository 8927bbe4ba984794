// Command provide inspects provide/inject component manifests.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/provide/cmd/provide/cmd"
	"github.com/go-drift/provide/pkg/errors"
)

func main() {
	defer errors.Recover("main")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
