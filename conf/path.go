/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

import (
	"path/filepath"
)

const configFileName = "sigscope.yaml"

var cachedRootDir string

// PresetRootDirectory causes RootDirectory() to not try any automatic deduction, and instead
// uses what's passed to it.
func PresetRootDirectory(root string) {
	cachedRootDir = root
}

// Path is the location of the configuration file.
func Path() (string, error) {
	root, err := RootDirectory()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, configFileName), nil
}
