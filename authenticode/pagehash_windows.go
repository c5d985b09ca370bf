/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"unsafe"

	"github.com/sigscope/sigscope/wintrust"
	"golang.org/x/sys/windows"
)

func firstPageHash(algorithm, path string) []byte {
	if _, ok := pageHashAlgorithm(algorithm); !ok {
		return nil
	}
	algorithm16, err := windows.UTF16PtrFromString(algorithm)
	if err != nil {
		return nil
	}
	path16, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil
	}
	digest, err := sizedBuffer(func() (uint32, error) {
		return wintrust.ComputeFirstPageHash(algorithm16, path16, nil, 0), nil
	}, func(buf []byte) (uint32, error) {
		return wintrust.ComputeFirstPageHash(algorithm16, path16, unsafe.Pointer(&buf[0]), uint32(len(buf))), nil
	})
	if err != nil || len(digest) == 0 {
		return nil
	}
	return digest
}
