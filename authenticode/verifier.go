/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto/x509"
	"fmt"
)

type Engine string

const (
	EngineAuto     Engine = "auto"
	EngineNative   Engine = "native"
	EnginePortable Engine = "portable"
)

type VerifierConfig struct {
	Engine Engine
	// Roots replaces the system roots for the portable engine.
	Roots            *x509.CertPool
	RevocationChecks bool
}

// NewVerifier returns the verifier for an engine. The automatic choice is
// the native trust provider where one exists.
func NewVerifier(config VerifierConfig) (Verifier, error) {
	switch config.Engine {
	case EngineAuto, "":
		if nativeAvailable {
			return newNativeVerifier(config)
		}
		return NewPortableVerifier(config.Roots), nil
	case EngineNative:
		return newNativeVerifier(config)
	case EnginePortable:
		return NewPortableVerifier(config.Roots), nil
	}
	return nil, fmt.Errorf("unknown verification engine %q", config.Engine)
}

func DefaultVerifier() Verifier {
	v, err := NewVerifier(VerifierConfig{})
	if err != nil {
		return NewPortableVerifier(nil)
	}
	return v
}
