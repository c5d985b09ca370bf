/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

import (
	"bytes"
	"errors"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FromYAML parses a configuration document. Keys that are absent keep their defaults.
func FromYAML(s string) (*Config, error) {
	conf := Default()
	decoder := yaml.NewDecoder(bytes.NewReader([]byte(s)))
	decoder.KnownFields(true)
	if err := decoder.Decode(conf); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Load reads the configuration at path. A missing file yields the defaults.
// Machine policy is applied on top of either.
func Load(path string) (*Config, error) {
	conf := Default()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		conf, err = FromYAML(string(data))
		if err != nil {
			return nil, err
		}
	case !errors.Is(err, os.ErrNotExist):
		return nil, err
	}
	conf.applyAdminPolicy()
	return conf, nil
}

// LoadDefault reads the configuration from the default location.
func LoadDefault() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return Load(path)
}
