/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"github.com/Velocidex/pkcs7"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
	"golang.org/x/text/encoding/unicode"
)

// OpusInfo is the publisher metadata a signer attaches as SpcSpOpusInfo.
type OpusInfo struct {
	PublisherDisplayName string
	MoreInfo             *Link `json:",omitempty"`
	PublisherInfo        *Link `json:",omitempty"`
}

// Link is a decoded SpcLink. Exactly one of the fields is set.
type Link struct {
	URL     string            `json:",omitempty"`
	File    string            `json:",omitempty"`
	Moniker *SerializedObject `json:",omitempty"`
}

type SerializedObject struct {
	ClassID [16]byte
	Data    []byte
}

func (l *Link) String() string {
	switch {
	case l == nil:
		return ""
	case l.URL != "":
		return l.URL
	case l.File != "":
		return l.File
	case l.Moniker != nil:
		return "moniker"
	}
	return ""
}

// ExtractOpus returns one entry per signer info of msg, in order. A signer
// without a decodable SpcSpOpusInfo attribute gets a nil entry.
func ExtractOpus(msg *pkcs7.PKCS7) []*OpusInfo {
	return extractOpus(msg, logrus.StandardLogger())
}

func extractOpus(msg *pkcs7.PKCS7, logger logrus.FieldLogger) []*OpusInfo {
	if msg == nil {
		return nil
	}
	infos := make([]*OpusInfo, len(msg.Signers))
	for i := range msg.Signers {
		for _, attr := range msg.Signers[i].AuthenticatedAttributes {
			if !attr.Type.Equal(oidSpcSpOpusInfo) {
				continue
			}
			info, err := decodeOpus(attr.Value.Bytes)
			if err != nil {
				logger.WithError(err).WithField("signer", i).Warn("Unable to decode publisher information")
				break
			}
			infos[i] = info
			break
		}
	}
	return infos
}

// parseOpus decodes
//
//	SpcSpOpusInfo ::= SEQUENCE {
//	    programName   [0] EXPLICIT SpcString OPTIONAL,
//	    moreInfo      [1] EXPLICIT SpcLink OPTIONAL,
//	    publisherInfo [2] EXPLICIT SpcLink OPTIONAL }
func parseOpus(der []byte) (*OpusInfo, error) {
	input := cryptobyte.String(der)
	var seq cryptobyte.String
	if !input.ReadASN1(&seq, asn1.SEQUENCE) {
		return nil, errMalformedOpus
	}
	info := &OpusInfo{}
	var field cryptobyte.String
	var present bool
	if !seq.ReadOptionalASN1(&field, &present, asn1.Tag(0).Constructed().ContextSpecific()) {
		return nil, errMalformedOpus
	}
	if present {
		name, err := parseSpcString(field)
		if err != nil {
			return nil, err
		}
		info.PublisherDisplayName = name
	}
	for _, target := range []struct {
		tag  asn1.Tag
		link **Link
	}{
		{asn1.Tag(1).Constructed().ContextSpecific(), &info.MoreInfo},
		{asn1.Tag(2).Constructed().ContextSpecific(), &info.PublisherInfo},
	} {
		if !seq.ReadOptionalASN1(&field, &present, target.tag) {
			return nil, errMalformedOpus
		}
		if !present {
			continue
		}
		link, err := parseSpcLink(field)
		if err != nil {
			return nil, err
		}
		*target.link = link
	}
	return info, nil
}

// parseSpcString decodes SpcString ::= CHOICE { unicode [0] IMPLICIT BMPString, ascii [1] IMPLICIT IA5String }.
func parseSpcString(in cryptobyte.String) (string, error) {
	var value cryptobyte.String
	var tag asn1.Tag
	if !in.ReadAnyASN1(&value, &tag) {
		return "", errMalformedOpus
	}
	switch tag {
	case asn1.Tag(0).ContextSpecific():
		decoded, err := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewDecoder().Bytes(value)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	case asn1.Tag(1).ContextSpecific():
		return string(value), nil
	}
	return "", errMalformedOpus
}

// parseSpcLink decodes
//
//	SpcLink ::= CHOICE {
//	    url     [0] IMPLICIT IA5String,
//	    moniker [1] IMPLICIT SpcSerializedObject,
//	    file    [2] EXPLICIT SpcString }
func parseSpcLink(in cryptobyte.String) (*Link, error) {
	var value cryptobyte.String
	var tag asn1.Tag
	if !in.ReadAnyASN1(&value, &tag) {
		return nil, errMalformedOpus
	}
	switch tag {
	case asn1.Tag(0).ContextSpecific():
		return &Link{URL: string(value)}, nil
	case asn1.Tag(1).Constructed().ContextSpecific():
		var classID, data cryptobyte.String
		if !value.ReadASN1(&classID, asn1.OCTET_STRING) || !value.ReadASN1(&data, asn1.OCTET_STRING) || len(classID) != 16 {
			return nil, errMalformedOpus
		}
		moniker := &SerializedObject{Data: append([]byte(nil), data...)}
		copy(moniker.ClassID[:], classID)
		return &Link{Moniker: moniker}, nil
	case asn1.Tag(2).Constructed().ContextSpecific():
		file, err := parseSpcString(value)
		if err != nil {
			return nil, err
		}
		return &Link{File: file}, nil
	}
	return nil, errMalformedOpus
}
