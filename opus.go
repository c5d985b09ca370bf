/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sigscope/sigscope/authenticode"
	"github.com/sigscope/sigscope/l18n"
)

var (
	opusCommand = app.Command("opus", "Print the publisher information of every signer.")
	opusFiles   = opusCommand.Arg("file", "Signed files.").Required().Strings()
)

func writeOpus(w io.Writer, path string, records []*authenticode.SignerRecord) {
	fmt.Fprintln(w, path)
	if len(records) == 0 {
		fmt.Fprintf(w, "  %s\n", l18n.Sprintf("No signatures"))
		return
	}
	for _, record := range records {
		fmt.Fprintf(w, "  %s\n", l18n.Sprintf("Signer %d: %s", record.Index, record.Outcome))
		for _, info := range record.Opus {
			if info == nil {
				continue
			}
			var fields []string
			if info.PublisherDisplayName != "" {
				fields = append(fields, info.PublisherDisplayName)
			}
			for _, link := range []*authenticode.Link{info.MoreInfo, info.PublisherInfo} {
				if s := link.String(); s != "" {
					fields = append(fields, s)
				}
			}
			if len(fields) > 0 {
				fmt.Fprintf(w, "    %s\n", strings.Join(fields, l18n.EnumerationSeparator()))
			}
		}
	}
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != opusCommand.FullCommand() {
			return false
		}
		config := loadConfig()
		logger := newLogger(config)
		enumerator := newEnumerator(config, logger)
		for _, path := range *opusFiles {
			records, err := enumerator.EnumerateSigners(path)
			if err != nil {
				failed = true
				fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
				continue
			}
			writeOpus(os.Stdout, path, records)
		}
		return true
	})
}
