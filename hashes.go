/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/Velocidex/ordereddict"
	"github.com/olekukonko/tablewriter"

	"github.com/sigscope/sigscope/authenticode"
	"github.com/sigscope/sigscope/l18n"
)

var (
	hashesCommand = app.Command("hashes", "Compute the Authenticode and first page hashes code integrity identifies files by.")
	hashesJSON    = hashesCommand.Flag("json", "Print JSON instead of a table.").Bool()
	hashesFiles   = hashesCommand.Arg("file", "Files to hash.").Required().Strings()
)

type fileHashes struct {
	path   string
	hashes *authenticode.CodeIntegrityHashes
	err    error
}

func hashesDict(result fileHashes) *ordereddict.Dict {
	dict := ordereddict.NewDict().Set("Path", result.path)
	if result.err != nil {
		return dict.Set("Error", result.err.Error())
	}
	return dict.
		Set("AuthenticodeSHA1", result.hashes.AuthenticodeSHA1).
		Set("AuthenticodeSHA256", result.hashes.AuthenticodeSHA256).
		Set("PageSHA1", result.hashes.PageSHA1).
		Set("PageSHA256", result.hashes.PageSHA256).
		Set("Flat", result.hashes.Flat)
}

func writeHashes(w io.Writer, results []fileHashes) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Hash", "SHA1", "SHA256"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, result := range results {
		if result.err != nil {
			table.Append([]string{result.path, "", result.err.Error(), ""})
			continue
		}
		kind := "Authenticode"
		if result.hashes.Flat {
			kind = l18n.Sprintf("Flat file")
		}
		table.Append([]string{result.path, kind, result.hashes.AuthenticodeSHA1, result.hashes.AuthenticodeSHA256})
		if result.hashes.PageSHA1 != "" || result.hashes.PageSHA256 != "" {
			table.Append([]string{result.path, l18n.Sprintf("First page"), result.hashes.PageSHA1, result.hashes.PageSHA256})
		}
	}
	table.Render()
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != hashesCommand.FullCommand() {
			return false
		}
		var results []fileHashes
		for _, path := range *hashesFiles {
			hashes, err := authenticode.FileHashes(path)
			if err != nil {
				failed = true
			}
			results = append(results, fileHashes{path: path, hashes: hashes, err: err})
		}
		if *hashesJSON {
			dicts := make([]*ordereddict.Dict, 0, len(results))
			for _, result := range results {
				dicts = append(dicts, hashesDict(result))
			}
			if err := writeJSON(os.Stdout, dicts); err != nil {
				fmt.Fprintln(os.Stderr, err)
				failed = true
			}
		} else {
			writeHashes(os.Stdout, results)
		}
		if failed {
			fmt.Fprintln(os.Stderr, l18n.Sprintf("Some files could not be hashed"))
		}
		return true
	})
}
