package main

import (
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/ioutil"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/roompack"
	"github.com/bodgit/roompack/bitmap"
	"github.com/bodgit/roompack/format"
	"github.com/urfave/cli/v2"
)

const (
	exitFailure  = 1
	exitNotFound = 2
	exitFormat   = 3
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", log.LstdFlags)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, roompack.ErrInputNotFound):
		return exitNotFound
	case errors.Is(err, format.ErrUnrecognized), errors.Is(err, format.ErrInvalidForced):
		return exitFormat
	default:
		return exitFailure
	}
}

func forcedFormat(c *cli.Context) (string, error) {
	switch {
	case c.Bool("bugbyte") && c.Bool("softwareprojects"):
		return "", errors.New("only one of --bugbyte and --softwareprojects may be given")
	case c.Bool("bugbyte"):
		return format.BugByte, nil
	case c.Bool("softwareprojects"):
		return format.SoftwareProjects, nil
	default:
		return "", nil
	}
}

func extract(c *cli.Context) error {
	file := c.String("input")
	if file == "" {
		file = c.Args().First()
	}
	if file == "" {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	input, err := filepath.Abs(file)
	if err != nil {
		return cli.NewExitError(err, exitFailure)
	}
	if info, err := os.Stat(input); err != nil || !info.Mode().IsRegular() {
		return cli.NewExitError(roompack.ErrInputNotFound, exitNotFound)
	}

	force, err := forcedFormat(c)
	if err != nil {
		return cli.NewExitError(err, exitFailure)
	}

	dir := c.String("output")
	if dir == "" {
		dir = strings.TrimSuffix(input, filepath.Ext(input))
	}
	if dir, err = filepath.Abs(dir); err != nil {
		return cli.NewExitError(err, exitFailure)
	}

	name := c.String("name")
	if name == "" {
		name = filepath.Base(dir)
	}

	options := roompack.DefaultOptions(name)
	if file := c.String("config"); file != "" {
		if err := options.Load(file); err != nil {
			return cli.NewExitError(err, exitFailure)
		}
	}

	logger := newLogger(c)
	logger.Printf("New roomPack: %s\n", options.Name)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return cli.NewExitError(err, exitFailure)
	}

	r := roompack.New(options, logger)
	if err := r.ExtractFile(input, dir, force); err != nil {
		return cli.NewExitError(err, exitCode(err))
	}

	if c.Bool("compile") {
		if err := r.Compile(dir); err != nil {
			return cli.NewExitError(err, exitFailure)
		}
	}

	return nil
}

func encode(c *cli.Context) error {
	if c.NArg() < 2 {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	in, err := os.Open(c.Args().Get(0))
	if err != nil {
		return cli.NewExitError(err, exitNotFound)
	}
	defer in.Close()

	m, _, err := image.Decode(in)
	if err != nil {
		return cli.NewExitError(err, exitFailure)
	}

	out, err := os.Create(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError(err, exitFailure)
	}
	defer out.Close()

	if err := bitmap.Encode(out, m, c.Int("size")); err != nil {
		return cli.NewExitError(err, exitFailure)
	}

	return nil
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "roompack"
	app.Usage = "Manic Miner roomPack extractor for the Playdate engine"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v", "debug"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "extract",
			Usage:       "Extract a roomPack from a memory dump",
			Description: "FILE is a binary dump of Manic Miner loaded at 32768",
			ArgsUsage:   "[FILE]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "input",
					Aliases: []string{"i"},
					Usage:   "binary dump to read, instead of FILE",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"d"},
					Usage:   "output directory, defaults to FILE without its extension",
				},
				&cli.StringFlag{
					Name:  "name",
					Usage: "roomPack name, defaults to the output directory name",
				},
				&cli.StringFlag{
					Name:    "config",
					EnvVars: []string{"ROOMPACK_CONFIG"},
					Usage:   "INI file overriding the roomPack settings",
				},
				&cli.BoolFlag{
					Name:    "compile",
					Aliases: []string{"c"},
					Usage:   "compile the images with pdc",
				},
				&cli.BoolFlag{
					Name:    "bugbyte",
					Aliases: []string{"b"},
					Usage:   "force the Bug Byte layout",
				},
				&cli.BoolFlag{
					Name:    "softwareprojects",
					Aliases: []string{"s"},
					Usage:   "force the Software Projects layout",
				},
			},
			Action: extract,
		},
		{
			Name:        "encode",
			Usage:       "Encode an image as packed monochrome tiles",
			Description: "",
			ArgsUsage:   "IMAGE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "size",
					Value: bitmap.Large,
					Usage: "tile size, 8 or 16",
				},
			},
			Action: encode,
		},
	}

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
