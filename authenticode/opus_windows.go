/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"runtime"
	"unsafe"

	"github.com/sigscope/sigscope/wintrust"
	"golang.org/x/sys/windows"
)

func decodeOpus(der []byte) (*OpusInfo, error) {
	if len(der) == 0 {
		return nil, errMalformedOpus
	}
	structType := (*byte)(unsafe.Pointer(uintptr(wintrust.SPC_SP_OPUS_INFO_STRUCT)))
	buf, err := sizedBuffer(func() (uint32, error) {
		var size uint32
		err := windows.CryptDecodeObject(windows.X509_ASN_ENCODING|windows.PKCS_7_ASN_ENCODING, structType, &der[0], uint32(len(der)), 0, nil, &size)
		return size, err
	}, func(buf []byte) (uint32, error) {
		size := uint32(len(buf))
		err := windows.CryptDecodeObject(windows.X509_ASN_ENCODING|windows.PKCS_7_ASN_ENCODING, structType, &der[0], uint32(len(der)), 0, unsafe.Pointer(&buf[0]), &size)
		return size, err
	})
	if err != nil {
		return nil, nativeCryptoError("CryptDecodeObject", err)
	}
	if uintptr(len(buf)) < unsafe.Sizeof(wintrust.SpcSpOpusInfo{}) {
		return nil, errMalformedOpus
	}
	opus := (*wintrust.SpcSpOpusInfo)(unsafe.Pointer(&buf[0]))
	info := &OpusInfo{
		MoreInfo:      nativeLink(opus.MoreInfo),
		PublisherInfo: nativeLink(opus.PublisherInfo),
	}
	if opus.ProgramName != nil {
		info.PublisherDisplayName = windows.UTF16PtrToString(opus.ProgramName)
	}
	runtime.KeepAlive(buf)
	return info, nil
}

func nativeLink(l *wintrust.SpcLink) *Link {
	if l == nil {
		return nil
	}
	switch l.LinkChoice {
	case wintrust.SPC_URL_LINK_CHOICE:
		return &Link{URL: l.String()}
	case wintrust.SPC_FILE_LINK_CHOICE:
		return &Link{File: l.String()}
	case wintrust.SPC_MONIKER_LINK_CHOICE:
		m := l.Moniker()
		obj := &SerializedObject{ClassID: m.ClassID}
		if m.SerializedData.Data != nil && m.SerializedData.Size > 0 {
			obj.Data = append([]byte(nil), unsafe.Slice(m.SerializedData.Data, m.SerializedData.Size)...)
		}
		return &Link{Moniker: obj}
	}
	return nil
}
