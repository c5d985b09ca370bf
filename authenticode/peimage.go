/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"
	"sort"
)

const (
	winCertRevision2        = 0x0200
	winCertTypePKCSSigned   = 0x0002
	winCertHeaderSize       = 8
	peCheckSumOffset        = 64
	peSecurityEntryPE32     = 128
	peSecurityEntryPE32Plus = 144
	pageSize                = 4096
)

var errNotPE = errors.New("not a PE image")

// peHeaders holds the offsets the image hashes need. They come from the
// headers alone.
type peHeaders struct {
	checkSum      int
	securityEntry int
	sizeOfHeaders int
	certOffset    int
	certSize      int
	sections      []peSection
}

type peSection struct {
	offset int
	size   int
	name   string
}

// peImage is a whole PE file together with its header offsets.
type peImage struct {
	peHeaders
	data []byte
}

func readPEHeaders(r io.ReaderAt) (*peHeaders, error) {
	var dos [0x40]byte
	if _, err := r.ReadAt(dos[:], 0); err != nil || dos[0] != 'M' || dos[1] != 'Z' {
		return nil, errNotPE
	}
	f, err := pe.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errNotPE, err)
	}
	defer f.Close()

	peOffset := int(binary.LittleEndian.Uint32(dos[0x3c:]))
	optOffset := peOffset + 4 + binary.Size(pe.FileHeader{})
	hdr := &peHeaders{checkSum: optOffset + peCheckSumOffset}
	var security pe.DataDirectory
	switch opt := f.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		hdr.securityEntry = optOffset + peSecurityEntryPE32
		hdr.sizeOfHeaders = int(opt.SizeOfHeaders)
		if opt.NumberOfRvaAndSizes > pe.IMAGE_DIRECTORY_ENTRY_SECURITY {
			security = opt.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_SECURITY]
		}
	case *pe.OptionalHeader64:
		hdr.securityEntry = optOffset + peSecurityEntryPE32Plus
		hdr.sizeOfHeaders = int(opt.SizeOfHeaders)
		if opt.NumberOfRvaAndSizes > pe.IMAGE_DIRECTORY_ENTRY_SECURITY {
			security = opt.DataDirectory[pe.IMAGE_DIRECTORY_ENTRY_SECURITY]
		}
	default:
		return nil, fmt.Errorf("%w: no optional header", errNotPE)
	}
	if hdr.sizeOfHeaders < hdr.securityEntry+8 {
		return nil, fmt.Errorf("%w: truncated headers", errNotPE)
	}
	// The security directory holds a file offset, not an RVA.
	hdr.certOffset = int(security.VirtualAddress)
	hdr.certSize = int(security.Size)
	for _, s := range f.Sections {
		if s.Size == 0 {
			continue
		}
		hdr.sections = append(hdr.sections, peSection{offset: int(s.Offset), size: int(s.Size), name: s.Name})
	}
	sort.Slice(hdr.sections, func(i, j int) bool {
		return hdr.sections[i].offset < hdr.sections[j].offset
	})
	return hdr, nil
}

func parsePEImage(data []byte) (*peImage, error) {
	hdr, err := readPEHeaders(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if hdr.sizeOfHeaders > len(data) {
		return nil, fmt.Errorf("%w: truncated headers", errNotPE)
	}
	if hdr.certSize > 0 && (hdr.certOffset < hdr.sizeOfHeaders || hdr.certOffset+hdr.certSize > len(data)) {
		return nil, fmt.Errorf("%w: certificate table out of bounds", errNotPE)
	}
	for _, s := range hdr.sections {
		if s.offset+s.size > len(data) {
			return nil, fmt.Errorf("%w: section %s out of bounds", errNotPE, s.name)
		}
	}
	return &peImage{peHeaders: *hdr, data: data}, nil
}

// readHeaderPage reads only the headers of the image at r.
func readHeaderPage(r io.ReaderAt, size int64) (*peImage, error) {
	hdr, err := readPEHeaders(r)
	if err != nil {
		return nil, err
	}
	if int64(hdr.sizeOfHeaders) > size {
		return nil, fmt.Errorf("%w: truncated headers", errNotPE)
	}
	data := make([]byte, hdr.sizeOfHeaders)
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, err
	}
	hdr.certSize = 0
	hdr.sections = nil
	return &peImage{peHeaders: *hdr, data: data}, nil
}

// headers returns the header bytes without the checksum and security directory entry.
func (img *peImage) headers() [][]byte {
	return [][]byte{
		img.data[:img.checkSum],
		img.data[img.checkSum+4 : img.securityEntry],
		img.data[img.securityEntry+8 : img.sizeOfHeaders],
	}
}

// digest computes the Authenticode image hash.
func (img *peImage) digest(h hash.Hash) []byte {
	for _, part := range img.headers() {
		h.Write(part)
	}
	hashed := img.sizeOfHeaders
	for _, s := range img.sections {
		h.Write(img.data[s.offset : s.offset+s.size])
		if end := s.offset + s.size; end > hashed {
			hashed = end
		}
	}
	if hashed < len(img.data) {
		trailing := img.data[hashed:]
		if img.certSize > 0 && img.certOffset >= hashed {
			start := img.certOffset - hashed
			h.Write(trailing[:start])
			h.Write(trailing[start+img.certSize:])
		} else {
			h.Write(trailing)
		}
	}
	return h.Sum(nil)
}

// firstPage returns the header page as code integrity hashes it: the
// headers without the checksum and security entry, zero padded to a page.
func (img *peImage) firstPage() []byte {
	page := make([]byte, 0, pageSize)
	for _, part := range img.headers() {
		page = append(page, part...)
	}
	if len(page) > pageSize {
		page = page[:pageSize]
	}
	return append(page, make([]byte, pageSize-len(page))...)
}

// signature returns the first PKCS#7 blob of the certificate table, or nil
// when the image is unsigned.
func (img *peImage) signature() []byte {
	if img.certSize == 0 {
		return nil
	}
	table := img.data[img.certOffset : img.certOffset+img.certSize]
	for len(table) >= winCertHeaderSize {
		length := int(binary.LittleEndian.Uint32(table))
		revision := binary.LittleEndian.Uint16(table[4:])
		certType := binary.LittleEndian.Uint16(table[6:])
		if length < winCertHeaderSize || length > len(table) {
			return nil
		}
		if revision == winCertRevision2 && certType == winCertTypePKCSSigned {
			return table[winCertHeaderSize:length]
		}
		next := (length + 7) &^ 7
		if next > len(table) {
			return nil
		}
		table = table[next:]
	}
	return nil
}
