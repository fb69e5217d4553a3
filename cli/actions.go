package cli

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"go.viam.com/ppmtool/logging"
	"go.viam.com/ppmtool/rimage"
	"go.viam.com/ppmtool/utils"
)

const loggerKey = "logger"

const legacyOptionsHelp = `OPTIONS:
c/C - Create copy
g/G - Convert to grayscale
n/N - Convert to negative
r/R - Rotate clockwise
s/S - Half size (shrink image by 2x)
l/L - Apply LSD-like filter
f/F - Flip image horizontally
ir/IR - Isolate red channel
ig/IG - Isolate green channel
ib/IB - Isolate blue channel`

var legacyOptions = map[string]rimage.Operation{
	"c":  rimage.OpCopy,
	"g":  rimage.OpGrayscale,
	"n":  rimage.OpNegative,
	"r":  rimage.OpRotate,
	"s":  rimage.OpHalf,
	"l":  rimage.OpLSD,
	"f":  rimage.OpFlip,
	"ir": rimage.OpIsolateRed,
	"ig": rimage.OpIsolateGreen,
	"ib": rimage.OpIsolateBlue,
}

func operationNames() string {
	return strings.Join(lo.Map(rimage.Operations(), func(op rimage.Operation, _ int) string {
		return string(op)
	}), ", ")
}

func setupLogger(c *cli.Context) error {
	logger := logging.NewLogger("ppmtool")
	if c.Bool(debugFlag) {
		logger = logging.NewDebugLogger("ppmtool")
	}
	logging.ReplaceGlobal(logger)
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[loggerKey] = logger
	return nil
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}

// RootAction keeps the original `ppmtool <file> [options]` calling convention: with only a file
// it prints the header summary, with trailing one or two letter options it decodes and applies
// them in order.
func RootAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.ShowAppHelp(c)
	}
	if c.NArg() == 1 {
		return InfoAction(c)
	}

	ops := make([]rimage.Operation, 0, c.NArg()-1)
	for _, arg := range c.Args().Slice()[1:] {
		op, ok := legacyOptions[strings.ToLower(arg)]
		if !ok {
			return errors.Wrapf(rimage.ErrUnknownOperation, "option %q", arg)
		}
		ops = append(ops, op)
	}
	return runDecode(c, c.Args().First(), ops, "")
}

// InfoAction prints the header summary of a file.
func InfoAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	doc, err := rimage.ReadFile(c.Context, path, false, loggerFrom(c).Sublogger("rimage"))
	if err != nil {
		return err
	}

	printf(c.App.Writer, "%s", doc.Summary())
	if _, err := rimage.RecordSize(doc.MaxColor); err != nil {
		warningf(c.App.ErrWriter, "pixel data with a max color value of %d cannot be decoded", doc.MaxColor)
	}
	return nil
}

// DecodeAction decodes a file, applies any --op flags in order, and optionally exports the
// result.
func DecodeAction(c *cli.Context) error {
	path, err := fileArg(c)
	if err != nil {
		return err
	}
	ops := make([]rimage.Operation, 0, len(c.StringSlice(opFlag)))
	for _, name := range c.StringSlice(opFlag) {
		op, err := rimage.ParseOperation(name)
		if err != nil {
			return err
		}
		ops = append(ops, op)
	}
	return runDecode(c, path, ops, c.Path(outFlag))
}

func runDecode(c *cli.Context, path string, ops []rimage.Operation, out string) error {
	logger := loggerFrom(c)
	doc, err := rimage.ReadFile(c.Context, path, true, logger.Sublogger("rimage"))
	if err != nil {
		return err
	}
	printf(c.App.Writer, "Decoded %d pixels (%d x %d, %s)",
		len(doc.Pixels), doc.Width, doc.Height, rimage.BitDepthLabel(doc.MaxColor))

	for _, op := range ops {
		if doc, err = doc.Apply(op); err != nil {
			return err
		}
		logger.Debugw("applied operation", "op", op, "width", doc.Width, "height", doc.Height)
	}
	if len(ops) > 0 {
		printf(c.App.Writer, "Applied: %s", strings.Join(lo.Map(ops, func(op rimage.Operation, _ int) string {
			return string(op)
		}), ", "))
	}
	printf(c.App.Writer, "Mean Color: %s", doc.MeanColor().Hex(doc.MaxColor))

	if out == "" {
		return nil
	}
	img, err := doc.ToImage()
	if err != nil {
		return err
	}
	mimeType := utils.MimeTypeFromPath(out)
	if doc.MaxColor == rimage.MaxColor16 && lo.Contains([]string{utils.MimeTypeJPEG, utils.MimeTypeGIF, utils.MimeTypeBMP, utils.MimeTypeQOI}, mimeType) {
		warningf(c.App.ErrWriter, "%s only stores 8 bits per channel, 16-bit samples will be truncated", mimeType)
	}
	if err := rimage.WriteImageToFile(c.Context, out, img); err != nil {
		return err
	}
	infof(c.App.Writer, "Wrote %s", out)
	return nil
}

func fileArg(c *cli.Context) (string, error) {
	if c.NArg() < 1 {
		return "", errors.New("missing <file> argument")
	}
	return c.Args().First(), nil
}
