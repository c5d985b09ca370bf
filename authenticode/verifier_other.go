//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"errors"
)

const nativeAvailable = false

func newNativeVerifier(config VerifierConfig) (Verifier, error) {
	return nil, errors.New("the native verification engine is only available on Windows")
}
