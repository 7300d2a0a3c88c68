// Command edl2json converts CMX 3600 edit decision lists to JSON
package main

import (
	"os"

	"github.com/cbsinteractive/edl/config"
	"github.com/cbsinteractive/edl/source"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.Out = os.Stderr
	logger.Formatter = &logrus.TextFormatter{DisableTimestamp: true}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal(err)
	}

	app := newCLIApp(&source.Opener{Region: cfg.AWSRegion}, logger, cfg.FrameRate)
	if err := app.Run(os.Args); err != nil {
		logger.Fatal(err)
	}
}
