// Package cli contains all of the ppmtool command line interface.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

// CLI flags.
const (
	debugFlag = "debug"
	opFlag    = "op"
	outFlag   = "out"
)

// NewApp returns a new app with the CLI command tree set up.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:  "ppmtool",
		Usage: "inspect and decode binary PPM (P6) images",
		UsageText: "ppmtool <file> [options]\n\n" +
			"If run with no options, the tool will output the width and height of the image.\n" +
			"A file named info or decode is taken as the subcommand; pass it as ./info or ./decode.\n\n" +
			legacyOptionsHelp,
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				EnvVars: []string{"PPMTOOL_DEBUG"},
				Usage:   "enable debug logging",
			},
		},
		Before: setupLogger,
		Action: RootAction,
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print dimensions, format subtype and bit depth without decoding pixels",
				ArgsUsage: "<file>",
				Action:    InfoAction,
			},
			{
				Name:      "decode",
				Usage:     "decode the pixel data, optionally transform it, and export it",
				ArgsUsage: "<file>",
				Flags: []cli.Flag{
					&cli.StringSliceFlag{
						Name:  opFlag,
						Usage: "operation to apply, may be repeated; one of " + operationNames(),
					},
					&cli.PathFlag{
						Name:    outFlag,
						EnvVars: []string{"PPMTOOL_OUT"},
						Usage:   "write the result to `FILE`; format is picked from the extension (png, jpg, gif, tif, bmp, qoi)",
					},
				},
				Action: DecodeAction,
			},
		},
	}
}
