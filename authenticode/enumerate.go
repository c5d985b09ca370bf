/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"crypto/x509"
	"errors"
	"fmt"
	"time"

	"github.com/Velocidex/pkcs7"
	"github.com/sirupsen/logrus"
)

// Verifier opens one verification round for the signature at index of a
// file. Index 0 is the primary signature; higher indices walk nested ones.
type Verifier interface {
	Verify(path string, index uint32) (Round, error)
}

// Round is the state of a single verification round. Everything a round
// returns is an owned copy; Close releases the round's native state and
// must be called before the next round is opened.
type Round interface {
	// Code is the trust provider status of the round.
	Code() uint32
	// SecondaryCount is the number of nested signatures on the file.
	SecondaryCount() uint32
	// HasState reports whether the round produced state data to extract from.
	HasState() bool
	// Message returns the encoded PKCS#7 SignedData of the round's signer.
	Message() ([]byte, error)
	// Chain returns the signer's chain leaf first, or nil if the round reports no signers.
	Chain() ([]CertificateInfo, error)
	Close() error
}

// SignerRecord is one signer discovered on a file.
type SignerRecord struct {
	Index           uint32
	Outcome         Outcome
	Code            uint32
	Message         *pkcs7.PKCS7 `json:"-"`
	RawMessage      []byte       `json:"-"`
	Chain           []*ChainElement
	Opus            []*OpusInfo
	DigestAlgorithm string
	SigningTime     *time.Time `json:",omitempty"`
}

// Leaf returns the signer's own certificate element.
func (r *SignerRecord) Leaf() *ChainElement {
	if len(r.Chain) == 0 {
		return nil
	}
	return r.Chain[len(r.Chain)-1]
}

// PublisherDisplayName returns the first non-empty Opus program name.
func (r *SignerRecord) PublisherDisplayName() string {
	for _, info := range r.Opus {
		if info != nil && info.PublisherDisplayName != "" {
			return info.PublisherDisplayName
		}
	}
	return ""
}

type Options struct {
	Verifier Verifier
	Logger   logrus.FieldLogger
}

type Enumerator struct {
	verifier Verifier
	logger   logrus.FieldLogger
}

func NewEnumerator(opts Options) *Enumerator {
	e := &Enumerator{verifier: opts.Verifier, logger: opts.Logger}
	if e.verifier == nil {
		e.verifier = DefaultVerifier()
	}
	if e.logger == nil {
		e.logger = logrus.StandardLogger()
	}
	return e
}

// EnumerateSigners discovers every signer of the file at path with the
// default verifier.
func EnumerateSigners(path string) ([]*SignerRecord, error) {
	return NewEnumerator(Options{}).EnumerateSigners(path)
}

const signersUnknown = -1

// EnumerateSigners runs one verification round per signature index and
// returns a record for each signer that was not skipped, primary first.
// Expired signers are skipped, as are rounds that carry no state data or
// whose message or chain cannot be read. A hash mismatch in any round fails the whole file with *TamperedFileError
// and no records. An unsigned or non-PE file yields no records and no error.
func (e *Enumerator) EnumerateSigners(path string) ([]*SignerRecord, error) {
	var records []*SignerRecord
	maxSigners := int64(signersUnknown)
	for index := uint32(0); maxSigners == signersUnknown || int64(index) < maxSigners+1; index++ {
		record, secondary, err := e.round(path, index)
		if maxSigners == signersUnknown {
			maxSigners = int64(secondary)
		}
		if err != nil {
			return nil, err
		}
		if record != nil {
			records = append(records, record)
		}
	}
	return records, nil
}

func (e *Enumerator) round(path string, index uint32) (record *SignerRecord, secondary uint32, err error) {
	round, err := e.verifier.Verify(path, index)
	if err != nil {
		return nil, 0, fmt.Errorf("unable to verify signature %d of %s: %w", index, path, err)
	}
	log := e.logger.WithFields(logrus.Fields{"path": path, "index": index})
	defer func() {
		if closeErr := round.Close(); closeErr != nil {
			log.WithError(closeErr).Warn("Unable to close verification round")
		}
	}()

	secondary = round.SecondaryCount()
	code := round.Code()
	outcome := Classify(code)
	log = log.WithFields(logrus.Fields{"outcome": outcome, "code": fmt.Sprintf("0x%08X", code)})
	log.Debug("Verification round complete")

	switch outcome {
	case OutcomeCertificateExpired:
		log.Info("Skipping expired signer")
		return nil, secondary, nil
	case OutcomeHashMismatch:
		return nil, secondary, &TamperedFileError{Path: path, Index: index}
	case OutcomeNoSignature:
		return nil, secondary, nil
	}
	// Some outcomes legitimately leave nothing to extract. Those rounds are
	// dropped rather than reported, whatever the outcome was.
	if !round.HasState() {
		log.Warn("Verification round carried no state data, skipping")
		return nil, secondary, nil
	}

	record, err = e.extract(round, index, outcome, code)
	if err != nil {
		// Only tampering ends the walk. Later indices may still be readable.
		log.WithError(err).Warn("Unable to extract signer, skipping")
		return nil, secondary, nil
	}
	return record, secondary, nil
}

func (e *Enumerator) extract(round Round, index uint32, outcome Outcome, code uint32) (*SignerRecord, error) {
	raw, err := round.Message()
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("empty signed message")
	}
	msg, err := pkcs7.Parse(raw)
	if err != nil {
		return nil, err
	}
	certs, err := round.Chain()
	if err != nil {
		return nil, err
	}
	record := &SignerRecord{
		Index:      index,
		Outcome:    outcome,
		Code:       code,
		Message:    msg,
		RawMessage: raw,
		Opus:       extractOpus(msg, e.logger),
	}
	var signer *CertificateInfo
	if len(certs) == 0 {
		if cert := signerCertificate(msg); cert != nil {
			info := certificateInfo(cert)
			signer = &info
		}
	}
	record.Chain = buildChain(certs, signer, e.logger)
	if len(msg.Signers) > 0 {
		if h, ok := digestAlgorithm(msg.Signers[0].DigestAlgorithm.Algorithm); ok {
			record.DigestAlgorithm = hashName(h)
		}
		if t, ok := signingTime(&msg.Signers[0]); ok {
			record.SigningTime = &t
		}
	}
	return record, nil
}

// signerCertificate finds the certificate named by the first signer info's issuer and serial number.
func signerCertificate(msg *pkcs7.PKCS7) *x509.Certificate {
	if len(msg.Signers) == 0 {
		return nil
	}
	return findCertificate(msg.Certificates, &msg.Signers[0])
}
