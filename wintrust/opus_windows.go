/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package wintrust

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	SPC_SP_OPUS_INFO_OBJID  = "1.3.6.1.4.1.311.2.1.12"
	SPC_SP_OPUS_INFO_STRUCT = 2007
)

const (
	SPC_URL_LINK_CHOICE     = 1
	SPC_MONIKER_LINK_CHOICE = 2
	SPC_FILE_LINK_CHOICE    = 3
)

type SpcSpOpusInfo struct {
	ProgramName   *uint16
	MoreInfo      *SpcLink
	PublisherInfo *SpcLink
}

// SpcLink holds a union; Value is the url or file string pointer, or the
// first word of an SpcSerializedObject for monikers.
type SpcLink struct {
	LinkChoice uint32
	Value      uintptr
}

type SpcSerializedObject struct {
	ClassID        [16]byte
	SerializedData windows.CryptDataBlob
}

func (l *SpcLink) String() string {
	if l.Value == 0 {
		return ""
	}
	return windows.UTF16PtrToString((*uint16)(unsafe.Pointer(l.Value)))
}

func (l *SpcLink) Moniker() *SpcSerializedObject {
	return (*SpcSerializedObject)(unsafe.Pointer(&l.Value))
}
