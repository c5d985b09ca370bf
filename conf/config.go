/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
)

type Config struct {
	// Engine is auto, native or portable.
	Engine string `yaml:"engine"`
	// TrustedRoots are PEM files whose certificates the portable engine trusts.
	TrustedRoots      []string `yaml:"trusted_roots,omitempty"`
	SystemRoots       bool     `yaml:"system_roots"`
	RevocationChecks  bool     `yaml:"revocation_checks"`
	PageHashAlgorithm string   `yaml:"page_hash_algorithm"`
	Workers           int      `yaml:"workers"`
	LogLevel          string   `yaml:"log_level"`
}

type ParseError struct {
	why      string
	offender string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.why, e.offender)
}

func Default() *Config {
	return &Config{
		Engine:            "auto",
		SystemRoots:       true,
		PageHashAlgorithm: "SHA256",
		Workers:           runtime.NumCPU(),
		LogLevel:          "info",
	}
}

// Validate normalizes the configuration in place.
func (conf *Config) Validate() error {
	conf.Engine = strings.ToLower(strings.TrimSpace(conf.Engine))
	switch conf.Engine {
	case "":
		conf.Engine = "auto"
	case "auto", "native", "portable":
	default:
		return &ParseError{"Invalid verification engine", conf.Engine}
	}

	conf.PageHashAlgorithm = strings.ToUpper(strings.TrimSpace(conf.PageHashAlgorithm))
	switch conf.PageHashAlgorithm {
	case "":
		conf.PageHashAlgorithm = "SHA256"
	case "SHA1", "SHA256":
	default:
		return &ParseError{"Invalid page hash algorithm", conf.PageHashAlgorithm}
	}

	if conf.Workers < 0 {
		return &ParseError{"Invalid worker count", fmt.Sprint(conf.Workers)}
	}
	if conf.Workers == 0 {
		conf.Workers = runtime.NumCPU()
	}

	if conf.LogLevel == "" {
		conf.LogLevel = "info"
	}
	if _, err := logrus.ParseLevel(conf.LogLevel); err != nil {
		return &ParseError{"Invalid log level", conf.LogLevel}
	}
	return nil
}

func (conf *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(conf.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
