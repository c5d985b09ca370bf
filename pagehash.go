/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"fmt"
	"os"

	"github.com/sigscope/sigscope/authenticode"
	"github.com/sigscope/sigscope/l18n"
)

var (
	pagehashCommand   = app.Command("pagehash", "Compute the code integrity hash of the first page of PE images.")
	pagehashAlgorithm = pagehashCommand.Flag("algorithm", "Hash algorithm: SHA1 or SHA256.").Enum("SHA1", "SHA256", "sha1", "sha256")
	pagehashFiles     = pagehashCommand.Arg("file", "PE images.").Required().Strings()
)

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != pagehashCommand.FullCommand() {
			return false
		}
		algorithm := *pagehashAlgorithm
		if algorithm == "" {
			algorithm = loadConfig().PageHashAlgorithm
		}
		for _, path := range *pagehashFiles {
			digest, ok := authenticode.FirstPageHash(algorithm, path)
			if !ok {
				failed = true
				fmt.Fprintf(os.Stderr, "%s: %s\n", path, l18n.Sprintf("Unable to compute first page hash"))
				continue
			}
			fmt.Printf("%s  %s\n", digest, path)
		}
		return true
	})
}
