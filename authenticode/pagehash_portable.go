/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto"
)

func portableFirstPageHash(h crypto.Hash, img *peImage) []byte {
	digest := h.New()
	digest.Write(img.firstPage())
	return digest.Sum(nil)
}
