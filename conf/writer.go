/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

func (conf *Config) ToYAML() (string, error) {
	out, err := yaml.Marshal(conf)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Save writes the configuration to path, creating its directory.
func (conf *Config) Save(path string) error {
	out, err := conf.ToYAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(out), 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
