/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Number is overridden at link time with -X.
var Number = "0.3.0"

func UserAgent() string {
	return fmt.Sprintf("sigscope/%s (pkcs7 %s; %s; %s; %s)", Number, DependencyVersion("github.com/Velocidex/pkcs7"), OsName(), runtime.Version(), runtime.GOARCH)
}

// DependencyVersion returns the short version of a module linked into the
// running binary, or "unknown".
func DependencyVersion(path string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, dep := range info.Deps {
		if dep.Path == path {
			return shortVersion(dep.Version)
		}
	}
	return "unknown"
}

// shortVersion turns a pseudo-version into its abbreviated commit hash.
func shortVersion(v string) string {
	parts := strings.Split(v, "-")
	if len(parts) == 3 && len(parts[2]) == 12 {
		return parts[2][:7]
	}
	return v
}

func trimVersion(version string) string {
	for i := 0; i < 2 && strings.HasSuffix(version, ".0"); i++ {
		version = version[:len(version)-2]
	}
	return version
}
