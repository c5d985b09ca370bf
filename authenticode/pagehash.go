/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto"
	"encoding/hex"
	"strings"
)

// Page hash algorithm names, as code integrity spells them.
const (
	PageHashSHA1   = "SHA1"
	PageHashSHA256 = "SHA256"
)

// FirstPageHash returns the uppercase hex hash of the first page of the PE
// image at path. The second result is false when the file cannot be hashed:
// it is missing, is not a PE image, or the algorithm is unknown.
func FirstPageHash(algorithm, path string) (string, bool) {
	digest := firstPageHash(strings.ToUpper(algorithm), path)
	if digest == nil {
		return "", false
	}
	return strings.ToUpper(hex.EncodeToString(digest)), true
}

func pageHashAlgorithm(name string) (crypto.Hash, bool) {
	switch name {
	case PageHashSHA1:
		return crypto.SHA1, true
	case PageHashSHA256:
		return crypto.SHA256, true
	}
	return 0, false
}
