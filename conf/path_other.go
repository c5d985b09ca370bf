//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

import (
	"os"
	"path/filepath"
)

func RootDirectory() (string, error) {
	if cachedRootDir != "" {
		return cachedRootDir, nil
	}
	root, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	cachedRootDir = filepath.Join(root, "sigscope")
	return cachedRootDir, nil
}
