//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"os"
)

func firstPageHash(algorithm, path string) []byte {
	h, ok := pageHashAlgorithm(algorithm)
	if !ok {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return nil
	}
	img, err := readHeaderPage(f, fi.Size())
	if err != nil {
		return nil
	}
	return portableFirstPageHash(h, img)
}
