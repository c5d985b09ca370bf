/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

import (
	"os"

	"github.com/sigscope/sigscope/authenticode"
)

// These are informational checks of the running binary, which do not serve security purposes.

// RunningPublishers lists the leaf subject of every signer that verified on
// the running executable.
func RunningPublishers() []string {
	path, err := os.Executable()
	if err != nil {
		return nil
	}
	return publishers(path, authenticode.NewEnumerator(authenticode.Options{}))
}

func publishers(path string, enumerator *authenticode.Enumerator) []string {
	records, err := enumerator.EnumerateSigners(path)
	if err != nil {
		return nil
	}
	var names []string
	for _, record := range records {
		if record.Outcome != authenticode.OutcomeSuccess {
			continue
		}
		if leaf := record.Leaf(); leaf != nil && leaf.SubjectCN != "" {
			names = append(names, leaf.SubjectCN)
		}
	}
	return names
}
