/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

type Kind int

const (
	KindRoot Kind = iota
	KindIntermediate
	KindLeaf
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "Root"
	case KindIntermediate:
		return "Intermediate"
	case KindLeaf:
		return "Leaf"
	}
	return "Unknown"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// CertificateInfo is an owned copy of one certificate of a verified chain,
// taken before the round that produced it is closed.
type CertificateInfo struct {
	Raw       []byte
	SubjectCN string
	IssuerCN  string
	NotBefore time.Time
	NotAfter  time.Time
}

// ChainElement is one certificate of a signer's chain. Issuer points at the
// next element toward the root, or at the element itself for the root.
type ChainElement struct {
	SubjectCN            string
	IssuerCN             string
	NotBefore            time.Time
	NotAfter             time.Time
	TBSFingerprint       string
	FingerprintAlgorithm string
	Certificate          []byte
	Kind                 Kind
	Issuer               *ChainElement `json:"-"`
}

// IsAnchor reports whether the element is the top of its chain.
func (e *ChainElement) IsAnchor() bool {
	return e.Issuer == e
}

// BuildChain orders a leaf first certificate list root first and annotates
// every element. With no chain it falls back to the signer's own
// certificate as a lone Leaf; with neither it returns nil.
func BuildChain(leafFirst []CertificateInfo, signer *CertificateInfo) []*ChainElement {
	return buildChain(leafFirst, signer, logrus.StandardLogger())
}

func buildChain(leafFirst []CertificateInfo, signer *CertificateInfo, logger logrus.FieldLogger) []*ChainElement {
	if len(leafFirst) == 0 {
		if signer == nil {
			return nil
		}
		leafFirst = []CertificateInfo{*signer}
	}
	chain := make([]*ChainElement, 0, len(leafFirst))
	for i := len(leafFirst) - 1; i >= 0; i-- {
		cert := &leafFirst[i]
		element := &ChainElement{
			SubjectCN:   cert.SubjectCN,
			IssuerCN:    cert.IssuerCN,
			NotBefore:   cert.NotBefore.UTC(),
			NotAfter:    cert.NotAfter.UTC(),
			Certificate: append([]byte(nil), cert.Raw...),
		}
		switch {
		case i == 0:
			element.Kind = KindLeaf
		case i == len(leafFirst)-1:
			element.Kind = KindRoot
		default:
			element.Kind = KindIntermediate
		}
		if len(chain) == 0 {
			element.Issuer = element
		} else {
			element.Issuer = chain[len(chain)-1]
		}
		fp, algorithm, err := fingerprintCertificate(element.Certificate)
		if err != nil {
			fields := logrus.Fields{"subject": element.SubjectCN, "kind": element.Kind}
			var unsupported *UnsupportedAlgorithmError
			if errors.As(err, &unsupported) {
				fields["oid"] = unsupported.OID
			}
			logger.WithFields(fields).WithError(err).Warn("Unable to fingerprint certificate")
			fp = UnknownFingerprint
		}
		element.TBSFingerprint = fp
		element.FingerprintAlgorithm = algorithm
		chain = append(chain, element)
	}
	return chain
}

// certificateInfo copies the fields of a parsed certificate the way the
// native chain walk reports them.
func certificateInfo(cert *x509.Certificate) CertificateInfo {
	return CertificateInfo{
		Raw:       cert.Raw,
		SubjectCN: SimpleDisplayName(cert.Subject),
		IssuerCN:  SimpleDisplayName(cert.Issuer),
		NotBefore: cert.NotBefore,
		NotAfter:  cert.NotAfter,
	}
}

var oidEmailAddress = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 1}

// SimpleDisplayName picks the first of common name, organizational unit,
// organization and e-mail address that is present.
func SimpleDisplayName(name pkix.Name) string {
	if name.CommonName != "" {
		return name.CommonName
	}
	if len(name.OrganizationalUnit) > 0 {
		return name.OrganizationalUnit[0]
	}
	if len(name.Organization) > 0 {
		return name.Organization[0]
	}
	for _, atv := range name.Names {
		if atv.Type.Equal(oidEmailAddress) {
			if s, ok := atv.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
