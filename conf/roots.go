/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package conf

import (
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"github.com/sigscope/sigscope/authenticode"
)

// Roots assembles the trust anchors for the portable engine. It returns nil
// when only the system roots apply.
func (conf *Config) Roots() (*x509.CertPool, error) {
	if len(conf.TrustedRoots) == 0 && conf.SystemRoots {
		return nil, nil
	}
	pool := x509.NewCertPool()
	if conf.SystemRoots {
		system, err := x509.SystemCertPool()
		if err == nil {
			pool = system
		}
	}
	for _, path := range conf.TrustedRoots {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		found := false
		for {
			var block *pem.Block
			block, data = pem.Decode(data)
			if block == nil {
				break
			}
			if block.Type != "CERTIFICATE" {
				continue
			}
			cert, err := x509.ParseCertificate(block.Bytes)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			pool.AddCert(cert)
			found = true
		}
		if !found {
			return nil, &ParseError{"No certificates in trusted root file", path}
		}
	}
	return pool, nil
}

func (conf *Config) VerifierConfig() (authenticode.VerifierConfig, error) {
	roots, err := conf.Roots()
	if err != nil {
		return authenticode.VerifierConfig{}, err
	}
	return authenticode.VerifierConfig{
		Engine:           authenticode.Engine(conf.Engine),
		Roots:            roots,
		RevocationChecks: conf.RevocationChecks,
	}, nil
}
