// Package main is the entry point for the docsight CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/docsight/docsight/internal/appinfo"
	"github.com/docsight/docsight/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := cli.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", exitErr.Err)
			return exitErr.Code
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return appinfo.ExitError
	}
	return appinfo.ExitSuccess
}
