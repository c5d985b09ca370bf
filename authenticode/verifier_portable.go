/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"bytes"
	"crypto"
	"crypto/x509"
	encoding_asn1 "encoding/asn1"
	"errors"
	"os"
	"time"

	"github.com/Velocidex/pkcs7"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

// PortableVerifier checks Authenticode signatures of PE images without the
// operating system's trust provider. Each round reports the status code the
// native provider would report for the same signature.
type PortableVerifier struct {
	// Roots are the trust anchors; nil means the system roots.
	Roots *x509.CertPool
	// Now is the verification time for signatures without a countersignature.
	Now func() time.Time
}

func NewPortableVerifier(roots *x509.CertPool) *PortableVerifier {
	return &PortableVerifier{Roots: roots, Now: time.Now}
}

type portableRound struct {
	code      uint32
	secondary uint32
	message   []byte
	chain     []CertificateInfo
}

func (r *portableRound) Code() uint32                      { return r.code }
func (r *portableRound) SecondaryCount() uint32            { return r.secondary }
func (r *portableRound) HasState() bool                    { return r.message != nil }
func (r *portableRound) Message() ([]byte, error)          { return r.message, nil }
func (r *portableRound) Chain() ([]CertificateInfo, error) { return r.chain, nil }
func (r *portableRound) Close() error                      { return nil }

func (v *PortableVerifier) Verify(path string, index uint32) (Round, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, err := parsePEImage(data)
	if err != nil {
		return &portableRound{code: CodeSubjectFormUnknown}, nil
	}
	primary := img.signature()
	if primary == nil {
		return &portableRound{code: CodeNoSignature}, nil
	}
	msg, err := pkcs7.Parse(primary)
	if err != nil {
		return &portableRound{code: CodeASN1BadTag}, nil
	}
	signatures := append([][]byte{primary}, nestedSignatures(msg)...)
	round := &portableRound{secondary: uint32(len(signatures) - 1)}
	if int(index) >= len(signatures) {
		round.code = CodeNoSignature
		return round, nil
	}
	if index > 0 {
		msg, err = pkcs7.Parse(signatures[index])
		if err != nil {
			round.code = CodeASN1BadTag
			return round, nil
		}
	}
	round.message = signatures[index]
	round.code, round.chain = v.check(img, msg)
	return round, nil
}

func (v *PortableVerifier) check(img *peImage, msg *pkcs7.PKCS7) (uint32, []CertificateInfo) {
	content, indirect, err := parseIndirectData(msg.Content)
	if err != nil {
		var unsupported *UnsupportedAlgorithmError
		if errors.As(err, &unsupported) {
			return CodeSubjectNotTrusted, nil
		}
		return CodeSubjectFormUnknown, nil
	}
	if len(msg.Signers) == 0 {
		return CodeNoSignature, nil
	}
	if !bytes.Equal(img.digest(indirect.hash.New()), indirect.digest) {
		return CodeBadDigest, nil
	}
	si := &msg.Signers[0]
	leaf, err := verifySignerInfo(msg.Certificates, si, content)
	switch {
	case errors.Is(err, errNoSignerCertificate):
		return CodeSubjectNotTrusted, nil
	case errors.Is(err, errMessageDigest):
		return CodeHashValue, nil
	case err != nil:
		return CodeBadSignature, nil
	}
	at := v.now()
	if t, ok := signingTime(si); ok {
		at = t
	}
	return v.chainStatus(leaf, msg.Certificates, at)
}

func (v *PortableVerifier) now() time.Time {
	if v.Now == nil {
		return time.Now()
	}
	return v.Now()
}

func (v *PortableVerifier) chainStatus(leaf *x509.Certificate, certs []*x509.Certificate, at time.Time) (uint32, []CertificateInfo) {
	intermediates := x509.NewCertPool()
	for _, cert := range certs {
		if cert != leaf {
			intermediates.AddCert(cert)
		}
	}
	chains, err := leaf.Verify(x509.VerifyOptions{
		Roots:         v.Roots,
		Intermediates: intermediates,
		CurrentTime:   at,
		KeyUsages:     []x509.ExtKeyUsage{x509.ExtKeyUsageCodeSigning},
	})
	if err == nil && len(chains) > 0 {
		return CodeSuccess, certificateInfos(chains[0])
	}
	fallback := certificateInfos(issuerChain(leaf, certs))
	var invalid x509.CertificateInvalidError
	var unknown x509.UnknownAuthorityError
	switch {
	case errors.As(err, &invalid) && invalid.Reason == x509.Expired:
		return CodeExpired, fallback
	case errors.As(err, &unknown):
		return CodeUntrustedRoot, fallback
	}
	return CodeChaining, fallback
}

// issuerChain links certificates by name from the leaf up, for chains that
// did not verify.
func issuerChain(leaf *x509.Certificate, certs []*x509.Certificate) []*x509.Certificate {
	chain := []*x509.Certificate{leaf}
	current := leaf
	for len(chain) <= len(certs) {
		if bytes.Equal(current.RawIssuer, current.RawSubject) {
			break
		}
		var next *x509.Certificate
		for _, cert := range certs {
			if cert != current && bytes.Equal(cert.RawSubject, current.RawIssuer) {
				next = cert
				break
			}
		}
		if next == nil {
			break
		}
		chain = append(chain, next)
		current = next
	}
	return chain
}

func certificateInfos(certs []*x509.Certificate) []CertificateInfo {
	infos := make([]CertificateInfo, 0, len(certs))
	for _, cert := range certs {
		infos = append(infos, certificateInfo(cert))
	}
	return infos
}

// nestedSignatures returns the DER ContentInfo of every signature nested in
// the unauthenticated attributes of msg, in encoded order.
func nestedSignatures(msg *pkcs7.PKCS7) [][]byte {
	var nested [][]byte
	for i := range msg.Signers {
		for _, attr := range msg.Signers[i].UnauthenticatedAttributes {
			if !attr.Type.Equal(oidNestedSignature) {
				continue
			}
			values := cryptobyte.String(attr.Value.Bytes)
			for !values.Empty() {
				var element cryptobyte.String
				if !values.ReadASN1Element(&element, asn1.SEQUENCE) {
					break
				}
				nested = append(nested, element)
			}
		}
	}
	return nested
}

type indirectData struct {
	hash   crypto.Hash
	digest []byte
}

// parseIndirectData decodes SpcIndirectDataContent and returns the bytes
// its message digest covers: the content octets of the outer SEQUENCE.
func parseIndirectData(raw []byte) ([]byte, *indirectData, error) {
	content := cryptobyte.String(raw)
	// Tolerate decoders that keep the outer SEQUENCE.
	outer := content
	var inner cryptobyte.String
	if outer.ReadASN1(&inner, asn1.SEQUENCE) && outer.Empty() && inner.PeekASN1Tag(asn1.SEQUENCE) {
		content = inner
	}
	in := content
	var data, digestInfo, algorithm, digest cryptobyte.String
	var dataType, digestOID encoding_asn1.ObjectIdentifier
	if !in.ReadASN1(&data, asn1.SEQUENCE) ||
		!in.ReadASN1(&digestInfo, asn1.SEQUENCE) ||
		!data.ReadASN1ObjectIdentifier(&dataType) ||
		!digestInfo.ReadASN1(&algorithm, asn1.SEQUENCE) ||
		!algorithm.ReadASN1ObjectIdentifier(&digestOID) ||
		!digestInfo.ReadASN1(&digest, asn1.OCTET_STRING) {
		return nil, nil, errMalformedIndirect
	}
	if !dataType.Equal(oidSpcPeImageData) {
		return nil, nil, errMalformedIndirect
	}
	h, ok := digestAlgorithm(digestOID)
	if !ok {
		return nil, nil, &UnsupportedAlgorithmError{OID: digestOID.String()}
	}
	return content, &indirectData{hash: h, digest: digest}, nil
}
