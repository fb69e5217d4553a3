// Package main is the ppmtool command itself.
package main

import (
	"os"

	"go.viam.com/ppmtool/cli"
	"go.viam.com/ppmtool/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	err := app.Run(os.Args)
	//nolint:errcheck
	logging.Global().Sync()
	if err != nil {
		cli.Errorf(os.Stderr, "%v", err)
		os.Exit(1)
	}
}
