// sha3sum 计算并校验 Keccak / SHA-3 摘要。
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"sha3sponge/common"
	"sha3sponge/crypto/sha3"
	"sha3sponge/log"
)

const version = "1.0.0"

var (
	algorithmFlag = &cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "Digest algorithm (keccak224..keccak512, sha3-224..sha3-512)",
		Value:   "sha3-256",
		EnvVars: []string{"SHA3SUM_ALGORITHM"},
	}
	checkFlag = &cli.BoolFlag{
		Name:    "check",
		Aliases: []string{"c"},
		Usage:   "Read checksums from the FILEs and verify them",
	}
	tagFlag = &cli.BoolFlag{
		Name:  "tag",
		Usage: "Print BSD-style checksums",
	}
	jsonFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "Print one JSON object per file",
	}
	bufsizeFlag = &cli.IntFlag{
		Name:  "bufsize",
		Usage: "Read chunk size in bytes",
		Value: 64 * 1024,
	}
	verbosityFlag = &cli.IntFlag{
		Name:    "verbosity",
		Usage:   "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:   3,
		EnvVars: []string{"SHA3SUM_VERBOSITY"},
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "Also write logs (logfmt) to the given file",
	}
	logJSONFlag = &cli.BoolFlag{
		Name:  "log.json",
		Usage: "Write the --log.file records as JSON instead of logfmt",
	}
)

var app = &cli.App{
	Name:      "sha3sum",
	Usage:     "print or check Keccak/SHA-3 checksums",
	Version:   version,
	ArgsUsage: "[FILE...]",
	Flags: []cli.Flag{
		algorithmFlag,
		checkFlag,
		tagFlag,
		jsonFlag,
		bufsizeFlag,
		verbosityFlag,
		logFileFlag,
		logJSONFlag,
	},
	HideHelpCommand: true,
	Before:          setupLogging,
	After:           closeLogging,
	Action:          run,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var logCloser io.Closer

// setupLogging 把根记录器接到 stderr，终端上使用彩色格式。
func setupLogging(ctx *cli.Context) error {
	var (
		output   = io.Writer(os.Stderr)
		usecolor = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < 0 || verbosity > int(log.LvlTrace) {
		return fmt.Errorf("invalid verbosity %d, want 0-%d", verbosity, log.LvlTrace)
	}
	handler := log.StreamHandler(output, log.TerminalFormat(usecolor))
	if path := ctx.String(logFileFlag.Name); path != "" {
		format := log.LogfmtFormat()
		if ctx.Bool(logJSONFlag.Name) {
			format = log.JSONFormat()
		}
		fh, err := log.FileHandler(path, format)
		if err != nil {
			return err
		}
		logCloser, _ = fh.(io.Closer)
		handler = log.MultiHandler(handler, fh)
	}
	log.PrintOrigins(verbosity >= int(log.LvlTrace))
	// 0 表示完全静默
	if verbosity == 0 {
		handler = log.DiscardHandler()
	} else {
		handler = log.LvlFilterHandler(log.Lvl(verbosity), handler)
	}
	log.Root().SetHandler(handler)
	log.Debug("Starting", "name", common.MakeName(ctx.App.Name, version))
	return nil
}

func closeLogging(*cli.Context) error {
	if logCloser != nil {
		return logCloser.Close()
	}
	return nil
}

func run(ctx *cli.Context) error {
	v, err := sha3.LookupVariant(ctx.String(algorithmFlag.Name))
	if err != nil {
		return err
	}
	bufsize := ctx.Int(bufsizeFlag.Name)
	if bufsize <= 0 {
		return fmt.Errorf("invalid bufsize %d", bufsize)
	}
	files := ctx.Args().Slice()
	if len(files) == 0 {
		files = []string{"-"}
	}
	s := newSummer(v, bufsize)
	if ctx.Bool(checkFlag.Name) {
		return checkFiles(ctx.App.Writer, s, files)
	}
	out := newPrinter(ctx.App.Writer, ctx.Bool(tagFlag.Name), ctx.Bool(jsonFlag.Name))

	var failed int
	for _, name := range files {
		digest, err := s.sumFile(name)
		if err != nil {
			log.Error("Failed to hash file", "file", name, "err", err)
			failed++
			continue
		}
		if err := out.print(s.params(), name, digest); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be read", failed, len(files))
	}
	return nil
}
