/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto/sha256"
	"crypto/x509"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func portableEnumerator(t *testing.T, roots *x509.CertPool) *Enumerator {
	logger, _ := quietLogger()
	return NewEnumerator(Options{Verifier: NewPortableVerifier(roots), Logger: logger})
}

func TestPortableSignedImage(t *testing.T) {
	pki := newTestPKI(t)
	leaf, key := pki.validLeaf(t, "SigScope Test Publisher")
	path := writeTestFile(t, "signed.exe", signedTestPE(t, &testSignature{
		cert:        leaf,
		key:         key,
		certs:       []*x509.Certificate{leaf, pki.intermediate},
		programName: "SigScope Test Program",
		moreInfoURL: "https://example.com/sigscope",
	}))

	round, err := NewPortableVerifier(pki.roots).Verify(path, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(CodeSuccess), round.Code())
	assert.Equal(t, uint32(0), round.SecondaryCount())
	assert.True(t, round.HasState())
	require.NoError(t, round.Close())

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, OutcomeSuccess, record.Outcome)
	assert.Equal(t, "SHA256", record.DigestAlgorithm)
	assert.Nil(t, record.SigningTime)
	assert.Equal(t, "SigScope Test Program", record.PublisherDisplayName())
	require.Len(t, record.Opus, 1)
	assert.Equal(t, "https://example.com/sigscope", record.Opus[0].MoreInfo.URL)

	require.Len(t, record.Chain, 3)
	assert.Equal(t, KindRoot, record.Chain[0].Kind)
	assert.Equal(t, "SigScope Test Root", record.Chain[0].SubjectCN)
	assert.Equal(t, KindIntermediate, record.Chain[1].Kind)
	assert.Equal(t, KindLeaf, record.Chain[2].Kind)
	assert.Equal(t, "SigScope Test Publisher", record.Chain[2].SubjectCN)
	assert.Equal(t, "SigScope Test Code Signing CA", record.Chain[2].IssuerCN)

	fp, err := Fingerprint(leaf.Raw)
	require.NoError(t, err)
	assert.Equal(t, fp, record.Leaf().TBSFingerprint)
}

func TestPortableTamperedImage(t *testing.T) {
	pki := newTestPKI(t)
	leaf, key := pki.validLeaf(t, "Tampered Publisher")
	signed := signedTestPE(t, &testSignature{cert: leaf, key: key, certs: []*x509.Certificate{leaf, pki.intermediate}})
	signed[testSectionOffset+0x10] ^= 0xff
	path := writeTestFile(t, "tampered.exe", signed)

	round, err := NewPortableVerifier(pki.roots).Verify(path, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(CodeBadDigest), round.Code())

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	assert.Empty(t, records)
	var tampered *TamperedFileError
	require.ErrorAs(t, err, &tampered)
	assert.Equal(t, path, tampered.Path)
	assert.Equal(t, uint32(0), tampered.Index)
}

func TestPortableChecksumIsNotCovered(t *testing.T) {
	pki := newTestPKI(t)
	leaf, key := pki.validLeaf(t, "Checksum Publisher")
	signed := signedTestPE(t, &testSignature{cert: leaf, key: key, certs: []*x509.Certificate{leaf, pki.intermediate}})
	signed[testOptOffset+64] ^= 0xff
	path := writeTestFile(t, "checksum.exe", signed)

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OutcomeSuccess, records[0].Outcome)
}

func TestPortableExpiredSigner(t *testing.T) {
	pki := newTestPKI(t)
	now := time.Now()
	leaf, key := pki.newLeaf(t, "Expired Publisher", now.Add(-2*year), now.Add(-year))
	path := writeTestFile(t, "expired.exe", signedTestPE(t, &testSignature{
		cert:  leaf,
		key:   key,
		certs: []*x509.Certificate{leaf, pki.intermediate},
	}))

	round, err := NewPortableVerifier(pki.roots).Verify(path, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(CodeExpired), round.Code())

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestPortableTimestampedSigner(t *testing.T) {
	pki := newTestPKI(t)
	now := time.Now()
	leaf, key := pki.newLeaf(t, "Timestamped Publisher", now.Add(-2*year), now.Add(-year))
	signedAt := now.Add(-18 * 30 * 24 * time.Hour).Truncate(time.Second)
	path := writeTestFile(t, "timestamped.exe", signedTestPE(t, &testSignature{
		cert:        leaf,
		key:         key,
		certs:       []*x509.Certificate{leaf, pki.intermediate},
		signingTime: signedAt,
	}))

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OutcomeSuccess, records[0].Outcome)
	require.NotNil(t, records[0].SigningTime)
	assert.True(t, signedAt.Equal(*records[0].SigningTime))
}

func TestPortableUntrustedRoot(t *testing.T) {
	pki := newTestPKI(t)
	leaf, key := pki.validLeaf(t, "Untrusted Publisher")
	path := writeTestFile(t, "untrusted.exe", signedTestPE(t, &testSignature{
		cert:  leaf,
		key:   key,
		certs: []*x509.Certificate{leaf, pki.intermediate},
	}))

	records, err := portableEnumerator(t, x509.NewCertPool()).EnumerateSigners(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OutcomeUntrustedRoot, records[0].Outcome)
	require.Len(t, records[0].Chain, 2)
	assert.Equal(t, "SigScope Test Code Signing CA", records[0].Chain[0].SubjectCN)
	assert.Equal(t, KindRoot, records[0].Chain[0].Kind)
	assert.Equal(t, KindLeaf, records[0].Chain[1].Kind)
}

func TestPortableBadSignature(t *testing.T) {
	pki := newTestPKI(t)
	leaf, _ := pki.validLeaf(t, "Claimed Publisher")
	_, otherKey := pki.validLeaf(t, "Actual Key Holder")
	path := writeTestFile(t, "forged.exe", signedTestPE(t, &testSignature{
		cert:  leaf,
		key:   otherKey,
		certs: []*x509.Certificate{leaf, pki.intermediate},
	}))

	round, err := NewPortableVerifier(pki.roots).Verify(path, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(CodeBadSignature), round.Code())

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, OutcomeOther, records[0].Outcome)
	assert.Equal(t, uint32(CodeBadSignature), records[0].Code)
}

func TestPortableNestedSignature(t *testing.T) {
	pki := newTestPKI(t)
	primaryLeaf, primaryKey := pki.validLeaf(t, "Primary Publisher")
	nestedLeaf, nestedKey := pki.validLeaf(t, "Nested Publisher")
	image := testPE(t)
	digest := testImageDigest(image)

	nested := (&testSignature{
		cert:        nestedLeaf,
		key:         nestedKey,
		certs:       []*x509.Certificate{nestedLeaf, pki.intermediate},
		programName: "Nested Program",
	}).sign(t, digest)
	primary := (&testSignature{
		cert:        primaryLeaf,
		key:         primaryKey,
		certs:       []*x509.Certificate{primaryLeaf, pki.intermediate},
		programName: "Primary Program",
		nested:      [][]byte{nested},
	}).sign(t, digest)
	path := writeTestFile(t, "nested.exe", attachSignature(image, primary))

	round, err := NewPortableVerifier(pki.roots).Verify(path, 1)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), round.SecondaryCount())
	assert.Equal(t, uint32(CodeSuccess), round.Code())

	round, err = NewPortableVerifier(pki.roots).Verify(path, 2)
	require.NoError(t, err)
	assert.Equal(t, uint32(CodeNoSignature), round.Code())
	assert.False(t, round.HasState())

	records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, uint32(0), records[0].Index)
	assert.Equal(t, "Primary Publisher", records[0].Leaf().SubjectCN)
	assert.Equal(t, "Primary Program", records[0].PublisherDisplayName())
	assert.Equal(t, uint32(1), records[1].Index)
	assert.Equal(t, "Nested Publisher", records[1].Leaf().SubjectCN)
	assert.Equal(t, "Nested Program", records[1].PublisherDisplayName())
}

func TestPortableUnsignedFiles(t *testing.T) {
	pki := newTestPKI(t)
	unsigned := writeTestFile(t, "unsigned.exe", testPE(t))
	text := writeTestFile(t, "notes.txt", []byte("not an executable"))

	for path, code := range map[string]uint32{
		unsigned: CodeNoSignature,
		text:     CodeSubjectFormUnknown,
	} {
		round, err := NewPortableVerifier(pki.roots).Verify(path, 0)
		require.NoError(t, err)
		assert.Equal(t, code, round.Code(), path)

		records, err := portableEnumerator(t, pki.roots).EnumerateSigners(path)
		require.NoError(t, err, path)
		assert.Empty(t, records, path)
	}
}

func TestPortableMissingFile(t *testing.T) {
	_, err := portableEnumerator(t, nil).EnumerateSigners(filepath.Join(t.TempDir(), "missing.exe"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestImageDigestMatchesSpelledOutRanges(t *testing.T) {
	image := testPE(t)
	img, err := parsePEImage(image)
	require.NoError(t, err)
	assert.Equal(t, testImageDigest(image), img.digest(sha256.New()))

	signed := attachSignature(image, []byte("signature bytes!"))
	img, err = parsePEImage(signed)
	require.NoError(t, err)
	assert.Equal(t, testImageDigest(image), img.digest(sha256.New()))
	assert.Equal(t, []byte("signature bytes!"), img.signature())
}

func TestParsePEImageRejectsGarbage(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("MZ"), append([]byte("MZ"), make([]byte, 0x100)...)} {
		_, err := parsePEImage(data)
		assert.ErrorIs(t, err, errNotPE)
	}
}
