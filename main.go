/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/alecthomas/kingpin/v2"
	"github.com/sirupsen/logrus"

	"github.com/sigscope/sigscope/authenticode"
	"github.com/sigscope/sigscope/conf"
)

type commandHandler func(command string) bool

var (
	app = kingpin.New("sigscope", "Authenticode signer and certificate chain inspector.")

	configPath = app.Flag("config", "The configuration file.").Short('c').Envar("SIGSCOPE_CONFIG").String()
	verbose    = app.Flag("verbose", "Log every verification round.").Short('v').Bool()
	engineFlag = app.Flag("engine", "Verification engine: auto, native or portable.").Enum("auto", "native", "portable")

	commandHandlers []commandHandler

	// failed is set by a command when any of its inputs failed.
	failed bool
)

// loadConfig reads the configuration and applies the global flags to it.
func loadConfig() *conf.Config {
	var config *conf.Config
	var err error
	if *configPath != "" {
		config, err = conf.Load(*configPath)
	} else {
		config, err = conf.LoadDefault()
	}
	kingpin.FatalIfError(err, "Unable to load configuration")
	if *engineFlag != "" {
		kingpin.FatalIfError(config.SetEngine(*engineFlag), "Invalid engine")
	}
	return config
}

func newLogger(config *conf.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(config.Level())
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

func newEnumerator(config *conf.Config, logger logrus.FieldLogger) *authenticode.Enumerator {
	verifierConfig, err := config.VerifierConfig()
	kingpin.FatalIfError(err, "Unable to load trusted roots")
	verifier, err := authenticode.NewVerifier(verifierConfig)
	kingpin.FatalIfError(err, "Unable to create verifier")
	return authenticode.NewEnumerator(authenticode.Options{Verifier: verifier, Logger: logger})
}

func interruptContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func main() {
	app.HelpFlag.Short('h')
	app.UsageTemplate(kingpin.CompactUsageTemplate)
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	for _, handler := range commandHandlers {
		if handler(command) {
			break
		}
	}
	if failed {
		os.Exit(1)
	}
}
