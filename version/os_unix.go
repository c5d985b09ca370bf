//go:build unix

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

import (
	"bytes"
	"fmt"

	"golang.org/x/sys/unix"
)

func utsToStr(u []byte) string {
	i := bytes.IndexByte(u, 0)
	if i < 0 {
		return string(u)
	}
	return string(u[:i])
}

func OsName() string {
	var utsname unix.Utsname
	if unix.Uname(&utsname) != nil {
		return "Unix Unknown"
	}
	return fmt.Sprintf("%s %s", utsToStr(utsname.Sysname[:]), utsToStr(utsname.Release[:]))
}
