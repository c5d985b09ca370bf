/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"crypto/x509/pkix"
	"debug/pe"
	encoding_asn1 "encoding/asn1"
	"encoding/binary"
	"math/big"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/text/encoding/unicode"
)

const (
	year = 365 * 24 * time.Hour

	testOptOffset     = 0x40 + 4 + 20
	testHeaderSize    = 0x200
	testSectionOffset = 0x200
	testSectionSize   = 0x200
)

type testPKI struct {
	root            *x509.Certificate
	intermediate    *x509.Certificate
	intermediateKey *ecdsa.PrivateKey
	roots           *x509.CertPool
}

var (
	pkiOnce   sync.Once
	sharedPKI *testPKI
	pkiErr    error
)

func newTestPKI(t *testing.T) *testPKI {
	t.Helper()
	pkiOnce.Do(func() {
		sharedPKI, pkiErr = generatePKI()
	})
	require.NoError(t, pkiErr)
	return sharedPKI
}

func generatePKI() (*testPKI, error) {
	now := time.Now()
	rootKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	rootTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "SigScope Test Root", Organization: []string{"SigScope Test"}},
		NotBefore:             now.Add(-5 * year),
		NotAfter:              now.Add(10 * year),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	rootDER, err := x509.CreateCertificate(rand.Reader, rootTemplate, rootTemplate, &rootKey.PublicKey, rootKey)
	if err != nil {
		return nil, err
	}
	root, err := x509.ParseCertificate(rootDER)
	if err != nil {
		return nil, err
	}
	intermediateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	intermediateTemplate := &x509.Certificate{
		SerialNumber:          big.NewInt(2),
		Subject:               pkix.Name{CommonName: "SigScope Test Code Signing CA", Organization: []string{"SigScope Test"}},
		NotBefore:             now.Add(-5 * year),
		NotAfter:              now.Add(10 * year),
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageCRLSign,
		BasicConstraintsValid: true,
		IsCA:                  true,
	}
	intermediateDER, err := x509.CreateCertificate(rand.Reader, intermediateTemplate, root, &intermediateKey.PublicKey, rootKey)
	if err != nil {
		return nil, err
	}
	intermediate, err := x509.ParseCertificate(intermediateDER)
	if err != nil {
		return nil, err
	}
	roots := x509.NewCertPool()
	roots.AddCert(root)
	return &testPKI{
		root:            root,
		intermediate:    intermediate,
		intermediateKey: intermediateKey,
		roots:           roots,
	}, nil
}

var leafSerial int64 = 100

func (p *testPKI) newLeaf(t *testing.T, commonName string, notBefore, notAfter time.Time) (*x509.Certificate, *ecdsa.PrivateKey) {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	leafSerial++
	template := &x509.Certificate{
		SerialNumber: big.NewInt(leafSerial),
		Subject:      pkix.Name{CommonName: commonName, Organization: []string{"SigScope Test"}},
		NotBefore:    notBefore,
		NotAfter:     notAfter,
		KeyUsage:     x509.KeyUsageDigitalSignature,
		ExtKeyUsage:  []x509.ExtKeyUsage{x509.ExtKeyUsageCodeSigning},
	}
	der, err := x509.CreateCertificate(rand.Reader, template, p.intermediate, &key.PublicKey, p.intermediateKey)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return cert, key
}

func (p *testPKI) validLeaf(t *testing.T, commonName string) (*x509.Certificate, *ecdsa.PrivateKey) {
	now := time.Now()
	return p.newLeaf(t, commonName, now.Add(-year), now.Add(year))
}

// testPE builds a minimal PE32+ image with one section and no certificate table.
func testPE(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	dos := make([]byte, 0x40)
	dos[0], dos[1] = 'M', 'Z'
	binary.LittleEndian.PutUint32(dos[0x3c:], 0x40)
	buf.Write(dos)
	buf.WriteString("PE\x00\x00")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, pe.FileHeader{
		Machine:              pe.IMAGE_FILE_MACHINE_AMD64,
		NumberOfSections:     1,
		SizeOfOptionalHeader: uint16(binary.Size(pe.OptionalHeader64{})),
		Characteristics:      pe.IMAGE_FILE_EXECUTABLE_IMAGE | pe.IMAGE_FILE_LARGE_ADDRESS_AWARE,
	}))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, pe.OptionalHeader64{
		Magic:                 0x20b,
		SizeOfCode:            testSectionSize,
		AddressOfEntryPoint:   0x1000,
		BaseOfCode:            0x1000,
		ImageBase:             0x140000000,
		SectionAlignment:      0x1000,
		FileAlignment:         0x200,
		MajorSubsystemVersion: 6,
		SizeOfImage:           0x2000,
		SizeOfHeaders:         testHeaderSize,
		CheckSum:              0x1234,
		Subsystem:             pe.IMAGE_SUBSYSTEM_WINDOWS_CUI,
		NumberOfRvaAndSizes:   16,
	}))
	section := pe.SectionHeader32{
		VirtualSize:      testSectionSize,
		VirtualAddress:   0x1000,
		SizeOfRawData:    testSectionSize,
		PointerToRawData: testSectionOffset,
		Characteristics:  pe.IMAGE_SCN_CNT_CODE | pe.IMAGE_SCN_MEM_EXECUTE | pe.IMAGE_SCN_MEM_READ,
	}
	copy(section.Name[:], ".text")
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, section))
	buf.Write(make([]byte, testHeaderSize-buf.Len()))
	code := make([]byte, testSectionSize)
	for i := range code {
		code[i] = byte(i * 7)
	}
	buf.Write(code)
	return buf.Bytes()
}

// testImageDigest is the Authenticode SHA-256 of an unsigned testPE image,
// spelled out range by range.
func testImageDigest(image []byte) []byte {
	h := sha256.New()
	h.Write(image[:testOptOffset+64])
	h.Write(image[testOptOffset+68 : testOptOffset+144])
	h.Write(image[testOptOffset+152 : testHeaderSize])
	h.Write(image[testSectionOffset : testSectionOffset+testSectionSize])
	h.Write(image[testSectionOffset+testSectionSize:])
	return h.Sum(nil)
}

// attachSignature appends a WIN_CERTIFICATE holding signature and points the security directory at it.
func attachSignature(image, signature []byte) []byte {
	signed := append([]byte(nil), image...)
	for len(signed)%8 != 0 {
		signed = append(signed, 0)
	}
	offset := len(signed)
	length := winCertHeaderSize + len(signature)
	header := make([]byte, winCertHeaderSize)
	binary.LittleEndian.PutUint32(header, uint32(length))
	binary.LittleEndian.PutUint16(header[4:], winCertRevision2)
	binary.LittleEndian.PutUint16(header[6:], winCertTypePKCSSigned)
	signed = append(signed, header...)
	signed = append(signed, signature...)
	for len(signed)%8 != 0 {
		signed = append(signed, 0)
	}
	binary.LittleEndian.PutUint32(signed[testOptOffset+144:], uint32(offset))
	binary.LittleEndian.PutUint32(signed[testOptOffset+148:], uint32(len(signed)-offset))
	return signed
}

func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

type testSignature struct {
	cert        *x509.Certificate
	key         *ecdsa.PrivateKey
	certs       []*x509.Certificate
	programName string
	moreInfoURL string
	signingTime time.Time
	nested      [][]byte
}

func bmpString(s string) []byte {
	encoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		panic(err)
	}
	return encoded
}

func addAlgorithm(b *cryptobyte.Builder, oid encoding_asn1.ObjectIdentifier, withNull bool) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oid)
		if withNull {
			b.AddASN1NULL()
		}
	})
}

func encodeAttribute(oid encoding_asn1.ObjectIdentifier, value func(b *cryptobyte.Builder)) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oid)
		b.AddASN1(asn1.SET, value)
	})
	return b.BytesOrPanic()
}

func encodeOpus(programName, moreInfoURL string) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		if programName != "" {
			b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddASN1(asn1.Tag(0).ContextSpecific(), func(b *cryptobyte.Builder) {
					b.AddBytes(bmpString(programName))
				})
			})
		}
		if moreInfoURL != "" {
			b.AddASN1(asn1.Tag(1).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddASN1(asn1.Tag(0).ContextSpecific(), func(b *cryptobyte.Builder) {
					b.AddBytes([]byte(moreInfoURL))
				})
			})
		}
	})
	return b.BytesOrPanic()
}

// indirectDataContent returns the content octets of an SpcIndirectDataContent for a SHA-256 image digest.
func indirectDataContent(imageDigest []byte) []byte {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidSpcPeImageData)
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1BitString(nil)
			b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
				b.AddASN1(asn1.Tag(2).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
					b.AddASN1(asn1.Tag(0).ContextSpecific(), func(b *cryptobyte.Builder) {
						b.AddBytes(bmpString("<<<Obsolete>>>"))
					})
				})
			})
		})
	})
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addAlgorithm(b, oidDigestSHA256, true)
		b.AddASN1OctetString(imageDigest)
	})
	return b.BytesOrPanic()
}

func (s *testSignature) sign(t *testing.T, imageDigest []byte) []byte {
	t.Helper()
	content := indirectDataContent(imageDigest)
	contentDigest := sha256.Sum256(content)

	attrs := [][]byte{
		encodeAttribute(oidContentType, func(b *cryptobyte.Builder) {
			b.AddASN1ObjectIdentifier(oidSpcIndirectData)
		}),
		encodeAttribute(oidMessageDigest, func(b *cryptobyte.Builder) {
			b.AddASN1OctetString(contentDigest[:])
		}),
	}
	if s.programName != "" || s.moreInfoURL != "" {
		attrs = append(attrs, encodeAttribute(oidSpcSpOpusInfo, func(b *cryptobyte.Builder) {
			b.AddBytes(encodeOpus(s.programName, s.moreInfoURL))
		}))
	}
	sort.Slice(attrs, func(i, j int) bool { return bytes.Compare(attrs[i], attrs[j]) < 0 })
	signedAttrs := sha256.Sum256(attributeSet(attrs))
	signature, err := ecdsa.SignASN1(rand.Reader, s.key, signedAttrs[:])
	require.NoError(t, err)

	var unauth [][]byte
	if !s.signingTime.IsZero() {
		unauth = append(unauth, encodeAttribute(oidCounterSignature, func(b *cryptobyte.Builder) {
			b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
				b.AddASN1Int64(1)
				b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
					b.AddBytes(s.cert.RawIssuer)
					b.AddASN1BigInt(s.cert.SerialNumber)
				})
				addAlgorithm(b, oidDigestSHA256, true)
				b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
					b.AddBytes(encodeAttribute(oidSigningTime, func(b *cryptobyte.Builder) {
						b.AddASN1UTCTime(s.signingTime.UTC())
					}))
				})
				addAlgorithm(b, oidPublicKeyECDSA, false)
				b.AddASN1OctetString([]byte{0})
			})
		}))
	}
	if len(s.nested) > 0 {
		unauth = append(unauth, encodeAttribute(oidNestedSignature, func(b *cryptobyte.Builder) {
			for _, nested := range s.nested {
				b.AddBytes(nested)
			}
		}))
	}

	certs := s.certs
	if certs == nil {
		certs = []*x509.Certificate{s.cert}
	}
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidSignedData)
		b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
			b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
				b.AddASN1Int64(1)
				b.AddASN1(asn1.SET, func(b *cryptobyte.Builder) {
					addAlgorithm(b, oidDigestSHA256, true)
				})
				b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
					b.AddASN1ObjectIdentifier(oidSpcIndirectData)
					b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
						b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
							b.AddBytes(content)
						})
					})
				})
				b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
					for _, cert := range certs {
						b.AddBytes(cert.Raw)
					}
				})
				b.AddASN1(asn1.SET, func(b *cryptobyte.Builder) {
					b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
						b.AddASN1Int64(1)
						b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
							b.AddBytes(s.cert.RawIssuer)
							b.AddASN1BigInt(s.cert.SerialNumber)
						})
						addAlgorithm(b, oidDigestSHA256, true)
						b.AddASN1(asn1.Tag(0).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
							for _, attr := range attrs {
								b.AddBytes(attr)
							}
						})
						addAlgorithm(b, oidPublicKeyECDSA, false)
						b.AddASN1OctetString(signature)
						if len(unauth) > 0 {
							b.AddASN1(asn1.Tag(1).Constructed().ContextSpecific(), func(b *cryptobyte.Builder) {
								for _, attr := range unauth {
									b.AddBytes(attr)
								}
							})
						}
					})
				})
			})
		})
	})
	return b.BytesOrPanic()
}

// signedTestPE signs a fresh test image with sig and returns the file bytes.
func signedTestPE(t *testing.T, sig *testSignature) []byte {
	t.Helper()
	image := testPE(t)
	return attachSignature(image, sig.sign(t, testImageDigest(image)))
}
