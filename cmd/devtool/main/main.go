package main

import (
	stderrors "errors"
	"os"

	"github.com/pterm/pterm"

	"github.com/bitbakery/devtool/cmd/devtool"
	"github.com/bitbakery/devtool/pkg/errors"
)

func main() {
	rootCmd := devtool.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Printfln("Error: %v", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a failed delegated build/test run to its own exit code;
// everything else exits 1
func exitCode(err error) int {
	var devtoolErr *errors.DevtoolError
	if stderrors.As(err, &devtoolErr) {
		if code, ok := devtoolErr.Details["exitCode"].(int); ok && code > 0 {
			return code
		}
	}
	return 1
}
