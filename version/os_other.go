//go:build !unix && !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

import "runtime"

func OsName() string {
	return runtime.GOOS
}
