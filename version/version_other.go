//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

import "errors"

// FileVersion is only available where the OS reads version resources.
func FileVersion(path string) (string, error) {
	return "", errors.ErrUnsupported
}
