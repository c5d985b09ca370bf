/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/sigscope/sigscope/l18n"
	"github.com/sigscope/sigscope/version"
)

var versionCommand = app.Command("version", "Report the binary version and build information.")

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != versionCommand.FullCommand() {
			return false
		}
		fmt.Println(version.UserAgent())
		if publishers := version.RunningPublishers(); len(publishers) > 0 {
			fmt.Println(l18n.Sprintf("Signed by %s", strings.Join(publishers, l18n.EnumerationSeparator())))
		} else {
			fmt.Println(l18n.Sprintf("Unsigned build"))
		}
		if *verbose {
			if info, ok := debug.ReadBuildInfo(); ok {
				fmt.Printf("\nBuild Info:\n%v\n", info)
			}
		}
		return true
	})
}
