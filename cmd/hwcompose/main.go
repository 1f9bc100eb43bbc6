// Package main is the entry point for hwcompose.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/IObundle/versat-ai/internal/cmd"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.NewRootCmd().Execute()
	if err == nil {
		return oerrors.ExitSuccess
	}

	var exitErr *oerrors.ExitError
	if !errors.As(err, &exitErr) || !exitErr.Printed {
		fmt.Fprintln(os.Stderr, err)
	}
	return oerrors.ExitCodeFromError(err)
}
