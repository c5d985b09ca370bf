/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"errors"
	"fmt"
	"syscall"
)

// TamperedFileError reports that a signature round found the file content
// no longer matches what was signed. It aborts the whole enumeration.
type TamperedFileError struct {
	Path  string
	Index uint32
}

func (e *TamperedFileError) Error() string {
	return fmt.Sprintf("%s: file content does not match signature %d", e.Path, e.Index)
}

// UnsupportedAlgorithmError is returned by Fingerprint for a signature
// algorithm OID with no known hash.
type UnsupportedAlgorithmError struct {
	OID string
}

func (e *UnsupportedAlgorithmError) Error() string {
	return "unsupported signature algorithm " + e.OID
}

// NativeCryptoError carries the failing native step and its platform error code.
type NativeCryptoError struct {
	Step string
	Code uint32
	Err  error
}

func (e *NativeCryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v (0x%08X)", e.Step, e.Err, e.Code)
	}
	return fmt.Sprintf("%s failed (0x%08X)", e.Step, e.Code)
}

func (e *NativeCryptoError) Unwrap() error {
	return e.Err
}

func nativeCryptoError(step string, err error) error {
	if err == nil {
		return nil
	}
	e := &NativeCryptoError{Step: step, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		e.Code = uint32(errno)
	}
	return e
}

var (
	errMalformedCertificate = errors.New("malformed certificate")
	errMalformedOpus        = errors.New("malformed SpcSpOpusInfo")
	errMalformedIndirect    = errors.New("malformed SpcIndirectDataContent")
)
