/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"os"
	"strings"
)

// CodeIntegrityHashes identify a file the way code integrity policies do. Page
// hashes are empty for files that are not PE images.
type CodeIntegrityHashes struct {
	AuthenticodeSHA1   string
	AuthenticodeSHA256 string
	PageSHA1           string
	PageSHA256         string
	// Flat is set when the file is not a PE image and the Authenticode
	// hashes cover the whole file.
	Flat bool
}

// FileHashes returns the Authenticode and first page hashes of the
// file at path.
func FileHashes(path string) (*CodeIntegrityHashes, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hashes := &CodeIntegrityHashes{}
	img, err := parsePEImage(data)
	if err != nil {
		hashes.Flat = true
		hashes.AuthenticodeSHA1 = flatHash(sha1.New(), data)
		hashes.AuthenticodeSHA256 = flatHash(sha256.New(), data)
		return hashes, nil
	}
	hashes.AuthenticodeSHA1 = upperHex(img.digest(sha1.New()))
	hashes.AuthenticodeSHA256 = upperHex(img.digest(sha256.New()))
	hashes.PageSHA1, _ = FirstPageHash(PageHashSHA1, path)
	hashes.PageSHA256, _ = FirstPageHash(PageHashSHA256, path)
	return hashes, nil
}

func flatHash(h hash.Hash, data []byte) string {
	h.Write(data)
	return upperHex(h.Sum(nil))
}

func upperHex(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}
