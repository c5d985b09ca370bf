/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

//go:generate go run golang.org/x/sys/windows/mkwinsyscall -output zsyscall_windows.go os_windows.go version_windows.go
