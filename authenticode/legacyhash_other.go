//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"github.com/sigscope/sigscope/md2"
)

func legacyHash(data []byte) ([]byte, error) {
	sum := md2.Sum(data)
	return sum[:], nil
}
