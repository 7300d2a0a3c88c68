package main

import (
	"context"
	"encoding/json"
	"io"

	"github.com/cbsinteractive/edl/edl"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

type opener interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// newCLIApp creates the converter. Lists are written to app.Writer, one
// JSON document per source.
func newCLIApp(src opener, logger logrus.FieldLogger, fps float64) *cli.App {
	app := &cli.App{
		Name:      "edl2json",
		Usage:     "Convert CMX 3600 edit decision lists to JSON",
		ArgsUsage: "[file|s3://bucket/key ...]",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "fps", Value: fps, Usage: "Frame rate of the list timecodes"},
			&cli.BoolFlag{Name: "compact", Aliases: []string{"c"}, Usage: "Write JSON without whitespace"},
			&cli.BoolFlag{Name: "keep-going", Aliases: []string{"k"}, Usage: "Skip sources that fail to decode"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				l, err := edl.Decode(c.App.Reader, c.Float64("fps"))
				if err != nil {
					return errors.Wrap(err, "stdin")
				}
				return writeList(c, l)
			}
			for _, uri := range c.Args().Slice() {
				l, err := convert(c.Context, src, uri, c.Float64("fps"))
				if err != nil {
					if !c.Bool("keep-going") {
						return err
					}
					logger.WithError(err).WithField("source", uri).Warn("skipping source")
					continue
				}
				if err := writeList(c, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
	// errors are returned to main rather than exiting inside Run
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

func convert(ctx context.Context, src opener, uri string, fps float64) (*edl.List, error) {
	rc, err := src.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	l, err := edl.Decode(rc, fps)
	return l, errors.Wrap(err, uri)
}

func writeList(c *cli.Context, l *edl.List) error {
	var (
		data []byte
		err  error
	)
	if c.Bool("compact") {
		data, err = json.Marshal(l)
	} else {
		data, err = json.MarshalIndent(l, "", "  ")
	}
	if err != nil {
		return err
	}
	_, err = c.App.Writer.Write(append(data, '\n'))
	return err
}
