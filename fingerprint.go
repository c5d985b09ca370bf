/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/sigscope/sigscope/authenticode"
	"github.com/sigscope/sigscope/l18n"
)

var (
	fingerprintCommand = app.Command("fingerprint", "Hash the to-be-signed part of certificates.")
	fingerprintFiles   = fingerprintCommand.Arg("file", "DER or PEM certificate files.").Required().ExistingFiles()
)

type certificateFingerprint struct {
	path        string
	subject     string
	algorithm   string
	fingerprint string
	err         error
}

// readCertificates returns every certificate in a PEM file, or the file
// itself when it holds no PEM blocks.
func readCertificates(data []byte) [][]byte {
	var certs [][]byte
	for {
		var block *pem.Block
		block, data = pem.Decode(data)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			certs = append(certs, block.Bytes)
		}
	}
	if certs == nil {
		certs = [][]byte{data}
	}
	return certs
}

func fingerprintFile(path string) []certificateFingerprint {
	data, err := os.ReadFile(path)
	if err != nil {
		return []certificateFingerprint{{path: path, err: err}}
	}
	var results []certificateFingerprint
	for _, der := range readCertificates(data) {
		result := certificateFingerprint{path: path}
		if cert, err := x509.ParseCertificate(der); err == nil {
			result.subject = authenticode.SimpleDisplayName(cert.Subject)
		}
		result.fingerprint, result.algorithm, result.err = authenticode.FingerprintWithAlgorithm(der)
		results = append(results, result)
	}
	return results
}

func writeFingerprints(w io.Writer, results []certificateFingerprint) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"File", "Subject", "Fingerprint"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, result := range results {
		fingerprint := result.algorithm + ":" + result.fingerprint
		if result.err != nil {
			fingerprint = result.err.Error()
		}
		table.Append([]string{result.path, result.subject, fingerprint})
	}
	table.Render()
}

func init() {
	commandHandlers = append(commandHandlers, func(command string) bool {
		if command != fingerprintCommand.FullCommand() {
			return false
		}
		var results []certificateFingerprint
		for _, path := range *fingerprintFiles {
			for _, result := range fingerprintFile(path) {
				if result.err != nil {
					failed = true
				}
				results = append(results, result)
			}
		}
		writeFingerprints(os.Stdout, results)
		if failed {
			fmt.Fprintln(os.Stderr, l18n.Sprintf("Some certificates could not be fingerprinted"))
		}
		return true
	})
}
