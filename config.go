/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/sigscope/sigscope/conf"
)

var (
	configCommand = app.Command("config", "Print the effective configuration.")
	configWrite   = configCommand.Flag("write", "Also save it as the default configuration file.").Bool()
)

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != configCommand.FullCommand() {
			return false
		}
		config := loadConfig()
		out, err := config.ToYAML()
		kingpin.FatalIfError(err, "Unable to encode configuration")
		fmt.Print(out)
		if *configWrite {
			path, err := conf.Path()
			kingpin.FatalIfError(err, "Unable to locate configuration directory")
			kingpin.FatalIfError(config.Save(path), "Unable to save configuration")
			fmt.Printf("# saved to %s\n", path)
		}
		return true
	})
}
