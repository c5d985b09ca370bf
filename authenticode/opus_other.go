//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

func decodeOpus(der []byte) (*OpusInfo, error) {
	return parseOpus(der)
}
