/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

// LegacyHash returns the MD2 digest of data. MD2 is absent from every modern
// crypto API, so on Windows this goes through the legacy CryptoAPI provider.
func LegacyHash(data []byte) ([]byte, error) {
	return legacyHash(data)
}
