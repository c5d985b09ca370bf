/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/sigscope/sigscope/authenticode"
	"github.com/sigscope/sigscope/l18n"
	"github.com/sigscope/sigscope/scan"
	"github.com/sigscope/sigscope/version"
)

const dateFormat = "2006-01-02"

func chainDict(element *authenticode.ChainElement) *ordereddict.Dict {
	return ordereddict.NewDict().
		Set("Kind", element.Kind.String()).
		Set("Subject", element.SubjectCN).
		Set("Issuer", element.IssuerCN).
		Set("NotBefore", element.NotBefore).
		Set("NotAfter", element.NotAfter).
		Set("FingerprintAlgorithm", element.FingerprintAlgorithm).
		Set("TBSFingerprint", element.TBSFingerprint)
}

func opusDict(info *authenticode.OpusInfo) *ordereddict.Dict {
	if info == nil {
		return nil
	}
	return ordereddict.NewDict().
		Set("ProgramName", info.PublisherDisplayName).
		Set("MoreInfo", info.MoreInfo.String()).
		Set("PublisherInfo", info.PublisherInfo.String())
}

func recordDict(record *authenticode.SignerRecord) *ordereddict.Dict {
	chain := make([]*ordereddict.Dict, 0, len(record.Chain))
	for _, element := range record.Chain {
		chain = append(chain, chainDict(element))
	}
	opus := make([]*ordereddict.Dict, 0, len(record.Opus))
	for _, info := range record.Opus {
		opus = append(opus, opusDict(info))
	}
	result := ordereddict.NewDict().
		Set("Index", record.Index).
		Set("Outcome", record.Outcome.String()).
		Set("Code", fmt.Sprintf("0x%08X", record.Code)).
		Set("DigestAlgorithm", record.DigestAlgorithm)
	if record.SigningTime != nil {
		result.Set("SigningTime", record.SigningTime.UTC())
	}
	return result.
		Set("Opus", opus).
		Set("Chain", chain)
}

func resultDict(result *scan.Result) *ordereddict.Dict {
	signers := make([]*ordereddict.Dict, 0, len(result.Signers))
	for _, record := range result.Signers {
		signers = append(signers, recordDict(record))
	}
	dict := ordereddict.NewDict().
		Set("Path", result.Path).
		Set("Size", result.Size)
	if v, err := version.FileVersion(result.Path); err == nil {
		dict.Set("FileVersion", v)
	}
	if result.Err != nil {
		dict.Set("Tampered", result.Tampered()).
			Set("Error", result.Err.Error())
	}
	return dict.Set("Signers", signers)
}

func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", out)
	return err
}

func validity(element *authenticode.ChainElement) string {
	return l18n.Sprintf("%s to %s (%s)",
		element.NotBefore.Format(dateFormat),
		element.NotAfter.Format(dateFormat),
		humanize.Time(element.NotAfter))
}

func writeChainTable(w io.Writer, chain []*authenticode.ChainElement) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{
		l18n.Sprintf("Kind"),
		l18n.Sprintf("Subject"),
		l18n.Sprintf("Issuer"),
		l18n.Sprintf("Valid"),
		l18n.Sprintf("Fingerprint"),
	})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	for _, element := range chain {
		table.Append([]string{
			element.Kind.String(),
			element.SubjectCN,
			element.IssuerCN,
			validity(element),
			element.FingerprintAlgorithm + ":" + element.TBSFingerprint,
		})
	}
	table.Render()
}

func writeSignerTables(w io.Writer, results []*scan.Result) {
	for _, result := range results {
		fmt.Fprintf(w, "%s (%s)\n", result.Path, humanize.Bytes(uint64(result.Size)))
		switch {
		case result.Tampered():
			fmt.Fprintf(w, "  %s\n\n", l18n.Sprintf("File has been tampered with"))
			continue
		case result.Err != nil:
			fmt.Fprintf(w, "  %v\n\n", result.Err)
			continue
		case len(result.Signers) == 0:
			fmt.Fprintf(w, "  %s\n\n", l18n.Sprintf("No signatures"))
			continue
		}
		for _, record := range result.Signers {
			fmt.Fprintf(w, "  %s\n", l18n.Sprintf("Signer %d: %s", record.Index, record.Outcome))
			if name := record.PublisherDisplayName(); name != "" {
				fmt.Fprintf(w, "  %s: %s\n", l18n.Sprintf("Publisher"), name)
			}
			if record.SigningTime != nil {
				fmt.Fprintf(w, "  %s\n", l18n.Sprintf("Signed at %s", record.SigningTime.UTC().Format(time.RFC3339)))
			}
			writeChainTable(w, record.Chain)
		}
		fmt.Fprintln(w)
	}
}
