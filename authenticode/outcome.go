/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

// Trust provider status codes. The portable verifier reports the same values
// the native provider would.
const (
	CodeSuccess            = 0x00000000
	CodeSubjectFormUnknown = 0x800B0003
	CodeSubjectNotTrusted  = 0x800B0004
	CodeNoSignature        = 0x800B0100
	CodeExpired            = 0x800B0101
	CodeUntrustedRoot      = 0x800B0109
	CodeChaining           = 0x800B010A
	CodeRevoked            = 0x800B010C
	CodeExplicitDistrust   = 0x800B0111
	CodeBadDigest          = 0x80096010
	CodeBadSignature       = 0x80090006
	CodeHashValue          = 0x80091007
	CodeASN1BadTag         = 0x8009310B
)

type Outcome uint32

const (
	OutcomeSuccess Outcome = iota
	OutcomeCertificateExpired
	OutcomeHashMismatch
	OutcomeUntrustedRoot
	OutcomeNoSignature
	OutcomeOther
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeCertificateExpired:
		return "CertificateExpired"
	case OutcomeHashMismatch:
		return "HashMismatch"
	case OutcomeUntrustedRoot:
		return "UntrustedRoot"
	case OutcomeNoSignature:
		return "NoSignature"
	default:
		return "Other"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Classify maps a trust provider status to an Outcome. Codes without a
// dedicated outcome are OutcomeOther; callers keep the code for diagnostics.
func Classify(code uint32) Outcome {
	switch code {
	case CodeSuccess:
		return OutcomeSuccess
	case CodeExpired:
		return OutcomeCertificateExpired
	case CodeBadDigest:
		return OutcomeHashMismatch
	case CodeUntrustedRoot:
		return OutcomeUntrustedRoot
	case CodeNoSignature, CodeSubjectFormUnknown:
		return OutcomeNoSignature
	default:
		return OutcomeOther
	}
}
