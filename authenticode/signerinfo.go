/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"bytes"
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/subtle"
	"crypto/x509"
	encoding_asn1 "encoding/asn1"
	"errors"
	"sort"
	"time"

	"github.com/Velocidex/pkcs7"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var (
	errNoSignerCertificate = errors.New("no certificate matches the signer")
	errMessageDigest       = errors.New("message digest does not match content")
	errBadSignature        = errors.New("signature does not verify")
)

func findCertificate(certs []*x509.Certificate, si *pkcs7.SignerInfo) *x509.Certificate {
	for _, cert := range certs {
		if cert.SerialNumber == nil || si.IssuerAndSerialNumber.SerialNumber == nil {
			continue
		}
		if cert.SerialNumber.Cmp(si.IssuerAndSerialNumber.SerialNumber) == 0 &&
			bytes.Equal(cert.RawIssuer, si.IssuerAndSerialNumber.IssuerName.FullBytes) {
			return cert
		}
	}
	return nil
}

// signingTime returns the time a signer was countersigned, from either an
// RFC 3161 timestamp token or a PKCS#9 countersignature.
func signingTime(si *pkcs7.SignerInfo) (time.Time, bool) {
	for _, attr := range si.UnauthenticatedAttributes {
		switch {
		case attr.Type.Equal(oidRFC3161Timestamp):
			if t, ok := timestampTokenTime(attr.Value.Bytes); ok {
				return t, true
			}
		case attr.Type.Equal(oidCounterSignature):
			if t, ok := counterSignatureTime(attr.Value.Bytes); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// timestampTokenTime reads genTime from the TSTInfo of an RFC 3161 token.
func timestampTokenTime(token []byte) (time.Time, bool) {
	msg, err := pkcs7.Parse(token)
	if err != nil {
		return time.Time{}, false
	}
	input := cryptobyte.String(msg.Content)
	var tstInfo cryptobyte.String
	if !input.ReadASN1(&tstInfo, asn1.SEQUENCE) {
		return time.Time{}, false
	}
	var genTime time.Time
	if !tstInfo.SkipASN1(asn1.INTEGER) ||
		!tstInfo.SkipASN1(asn1.OBJECT_IDENTIFIER) ||
		!tstInfo.SkipASN1(asn1.SEQUENCE) ||
		!tstInfo.SkipASN1(asn1.INTEGER) ||
		!tstInfo.ReadASN1GeneralizedTime(&genTime) {
		return time.Time{}, false
	}
	return genTime, true
}

// counterSignatureTime reads the signingTime attribute of a PKCS#9
// countersignature, which is a bare SignerInfo.
func counterSignatureTime(der []byte) (time.Time, bool) {
	input := cryptobyte.String(der)
	var si, attrs cryptobyte.String
	var present bool
	if !input.ReadASN1(&si, asn1.SEQUENCE) ||
		!si.SkipASN1(asn1.INTEGER) ||
		!si.SkipASN1(asn1.SEQUENCE) ||
		!si.SkipASN1(asn1.SEQUENCE) ||
		!si.ReadOptionalASN1(&attrs, &present, asn1.Tag(0).Constructed().ContextSpecific()) ||
		!present {
		return time.Time{}, false
	}
	for !attrs.Empty() {
		var attr, values cryptobyte.String
		var oid encoding_asn1.ObjectIdentifier
		if !attrs.ReadASN1(&attr, asn1.SEQUENCE) ||
			!attr.ReadASN1ObjectIdentifier(&oid) ||
			!attr.ReadASN1(&values, asn1.SET) {
			return time.Time{}, false
		}
		if !oid.Equal(oidSigningTime) {
			continue
		}
		return readTime(values)
	}
	return time.Time{}, false
}

func readTime(in cryptobyte.String) (time.Time, bool) {
	var t time.Time
	switch {
	case in.PeekASN1Tag(asn1.UTCTime):
		if in.ReadASN1UTCTime(&t) {
			return t, true
		}
	case in.PeekASN1Tag(asn1.GeneralizedTime):
		if in.ReadASN1GeneralizedTime(&t) {
			return t, true
		}
	}
	return time.Time{}, false
}

// verifySignerInfo checks that si signs content, following RFC 5652
// section 5.4: with authenticated attributes the messageDigest attribute
// must match and the signature covers the DER SET of attributes.
func verifySignerInfo(certs []*x509.Certificate, si *pkcs7.SignerInfo, content []byte) (*x509.Certificate, error) {
	cert := findCertificate(certs, si)
	if cert == nil {
		return nil, errNoSignerCertificate
	}
	h, ok := digestAlgorithm(si.DigestAlgorithm.Algorithm)
	if !ok {
		return cert, &UnsupportedAlgorithmError{OID: si.DigestAlgorithm.Algorithm.String()}
	}
	digest := h.New()
	digest.Write(content)
	contentDigest := digest.Sum(nil)

	if len(si.AuthenticatedAttributes) == 0 {
		return cert, checkSignature(cert, h, contentDigest, si.EncryptedDigest)
	}

	var messageDigest []byte
	for _, attr := range si.AuthenticatedAttributes {
		if !attr.Type.Equal(oidMessageDigest) {
			continue
		}
		value := cryptobyte.String(attr.Value.Bytes)
		var octets cryptobyte.String
		if !value.ReadASN1(&octets, asn1.OCTET_STRING) {
			return cert, errMessageDigest
		}
		messageDigest = octets
	}
	if subtle.ConstantTimeCompare(messageDigest, contentDigest) != 1 {
		return cert, errMessageDigest
	}

	encodings := make([][]byte, 0, len(si.AuthenticatedAttributes))
	for _, attr := range si.AuthenticatedAttributes {
		var b cryptobyte.Builder
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(attr.Type)
			b.AddASN1(asn1.SET, func(b *cryptobyte.Builder) {
				b.AddBytes(attr.Value.Bytes)
			})
		})
		encoded, err := b.Bytes()
		if err != nil {
			return cert, err
		}
		encodings = append(encodings, encoded)
	}
	// Try the order the attributes were parsed in first, then DER order.
	err := errBadSignature
	for _, sorted := range []bool{false, true} {
		if sorted {
			sort.Slice(encodings, func(i, j int) bool {
				return bytes.Compare(encodings[i], encodings[j]) < 0
			})
		}
		digest := h.New()
		digest.Write(attributeSet(encodings))
		if err = checkSignature(cert, h, digest.Sum(nil), si.EncryptedDigest); err == nil {
			return cert, nil
		}
	}
	return cert, err
}

func attributeSet(encodings [][]byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SET, func(b *cryptobyte.Builder) {
		for _, e := range encodings {
			b.AddBytes(e)
		}
	})
	return b.BytesOrPanic()
}

// checkSignature verifies directly against the public key, so that legacy
// SHA-1 and MD5 signatures still verify.
func checkSignature(cert *x509.Certificate, h crypto.Hash, digest, signature []byte) error {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		if rsa.VerifyPKCS1v15(pub, h, digest, signature) != nil {
			return errBadSignature
		}
		return nil
	case *ecdsa.PublicKey:
		if !ecdsa.VerifyASN1(pub, digest, signature) {
			return errBadSignature
		}
		return nil
	case ed25519.PublicKey:
		return errors.New("ed25519 signers are not supported")
	}
	return errors.New("unsupported signer public key")
}
