package main

import (
	"fmt"
	"os"

	"github.com/reposmith/reposmith/cmd/cli"
)

const (
	failureOutputTemplateConstant = "%v\n"
)

// main executes the reposmith command-line application.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, failureOutputTemplateConstant, executionError)
		os.Exit(1)
	}
}
