/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	encoding_asn1 "encoding/asn1"
	"encoding/hex"
	"hash"
	"strings"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/crypto/sha3"
)

// UnknownFingerprint stands in for the TBS hash of a certificate whose
// signature algorithm cannot be hashed.
const UnknownFingerprint = "UNKNOWN"

type tbsAlgorithm struct {
	name string
	size int
	sum  func([]byte) ([]byte, error)
}

func hashed(name string, newHash func() hash.Hash) tbsAlgorithm {
	return tbsAlgorithm{
		name: name,
		size: newHash().Size(),
		sum: func(data []byte) ([]byte, error) {
			h := newHash()
			h.Write(data)
			return h.Sum(nil), nil
		},
	}
}

var (
	tbsMD2      = tbsAlgorithm{name: "MD2", size: 16, sum: LegacyHash}
	tbsMD5      = hashed("MD5", md5.New)
	tbsSHA1     = hashed("SHA1", sha1.New)
	tbsSHA256   = hashed("SHA256", sha256.New)
	tbsSHA384   = hashed("SHA384", sha512.New384)
	tbsSHA512   = hashed("SHA512", sha512.New)
	tbsSHA3_256 = hashed("SHA3_256", sha3.New256)
	tbsSHA3_384 = hashed("SHA3_384", sha3.New384)
	tbsSHA3_512 = hashed("SHA3_512", sha3.New512)
)

// Signature algorithm OIDs, RSA then DSA then ECDSA then the NIST SHA-3 arcs.
var tbsAlgorithms = map[string]tbsAlgorithm{
	"1.2.840.113549.1.1.2":    tbsMD2,
	"1.2.840.113549.1.1.4":    tbsMD5,
	"1.2.840.113549.1.1.5":    tbsSHA1,
	"1.3.14.3.2.29":           tbsSHA1,
	"1.2.840.113549.1.1.11":   tbsSHA256,
	"1.2.840.113549.1.1.12":   tbsSHA384,
	"1.2.840.113549.1.1.13":   tbsSHA512,
	"1.2.840.10040.4.3":       tbsSHA1,
	"2.16.840.1.101.3.4.3.2":  tbsSHA256,
	"2.16.840.1.101.3.4.3.3":  tbsSHA384,
	"2.16.840.1.101.3.4.3.4":  tbsSHA512,
	"1.2.840.10045.4.1":       tbsSHA1,
	"1.2.840.10045.4.3.2":     tbsSHA256,
	"1.2.840.10045.4.3.3":     tbsSHA384,
	"1.2.840.10045.4.3.4":     tbsSHA512,
	"2.16.840.1.101.3.4.3.14": tbsSHA3_256,
	"2.16.840.1.101.3.4.3.15": tbsSHA3_384,
	"2.16.840.1.101.3.4.3.16": tbsSHA3_512,
}

// Fingerprint hashes the TBSCertificate of a DER certificate, byte for byte
// as encoded, with the hash named by the certificate's own signature
// algorithm. The result is uppercase hex with no separators.
func Fingerprint(certificate []byte) (string, error) {
	fp, _, err := fingerprintCertificate(certificate)
	return fp, err
}

// FingerprintWithAlgorithm is Fingerprint that also names the hash used.
func FingerprintWithAlgorithm(certificate []byte) (fingerprint, algorithm string, err error) {
	return fingerprintCertificate(certificate)
}

// FingerprintAlgorithm names the hash Fingerprint would use for a signature algorithm OID.
func FingerprintAlgorithm(oid string) (string, bool) {
	alg, ok := tbsAlgorithms[oid]
	return alg.name, ok
}

func fingerprintCertificate(certificate []byte) (fp string, algorithm string, err error) {
	tbs, oid, err := splitCertificate(certificate)
	if err != nil {
		return "", "", err
	}
	alg, ok := tbsAlgorithms[oid.String()]
	if !ok {
		return "", "", &UnsupportedAlgorithmError{OID: oid.String()}
	}
	digest, err := alg.sum(tbs)
	if err != nil {
		return "", alg.name, err
	}
	return strings.ToUpper(hex.EncodeToString(digest)), alg.name, nil
}

// splitCertificate returns the verbatim TBSCertificate element and the outer signatureAlgorithm OID.
func splitCertificate(der []byte) ([]byte, encoding_asn1.ObjectIdentifier, error) {
	input := cryptobyte.String(der)
	var cert, tbs, sigAlg cryptobyte.String
	if !input.ReadASN1(&cert, asn1.SEQUENCE) {
		return nil, nil, errMalformedCertificate
	}
	if !cert.ReadASN1Element(&tbs, asn1.SEQUENCE) {
		return nil, nil, errMalformedCertificate
	}
	if !cert.ReadASN1(&sigAlg, asn1.SEQUENCE) {
		return nil, nil, errMalformedCertificate
	}
	var oid encoding_asn1.ObjectIdentifier
	if !sigAlg.ReadASN1ObjectIdentifier(&oid) {
		return nil, nil, errMalformedCertificate
	}
	return tbs, oid, nil
}
