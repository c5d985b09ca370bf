/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"fmt"
	"os"

	"github.com/Velocidex/ordereddict"
	"github.com/alecthomas/kingpin/v2"

	"github.com/sigscope/sigscope/l18n"
	"github.com/sigscope/sigscope/scan"
)

var (
	signersCommand   = app.Command("signers", "Enumerate the Authenticode signers of files.")
	signersJSON      = signersCommand.Flag("json", "Print JSON instead of tables.").Bool()
	signersRecursive = signersCommand.Flag("recursive", "Walk directories recursively.").Short('r').Bool()
	signersPaths     = signersCommand.Arg("path", "Files or directories to inspect.").Required().Strings()
)

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != signersCommand.FullCommand() {
			return false
		}
		config := loadConfig()
		logger := newLogger(config)
		ctx, cancel := interruptContext()
		defer cancel()

		results, err := scan.Files(ctx, *signersPaths, scan.Options{
			Enumerator: newEnumerator(config, logger),
			Workers:    config.Workers,
			Recursive:  *signersRecursive,
			Logger:     logger,
		})
		if results == nil && err != nil {
			kingpin.FatalIfError(err, "Unable to scan")
		}
		if err != nil {
			logger.WithError(err).Error("Scan interrupted")
			failed = true
		}

		if *signersJSON {
			dicts := make([]*ordereddict.Dict, 0, len(results))
			for _, result := range results {
				dicts = append(dicts, resultDict(result))
			}
			kingpin.FatalIfError(writeJSON(os.Stdout, dicts), "Unable to write output")
		} else {
			writeSignerTables(os.Stdout, results)
		}

		failures := 0
		for _, result := range results {
			if result.Err != nil {
				failures++
			}
		}
		if failures > 0 {
			failed = true
			fmt.Fprintln(os.Stderr, l18n.Sprintf("%d of %d files failed", failures, len(results)))
		}
		return true
	})
}
