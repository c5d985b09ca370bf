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
	CMSG_ENCODED_MESSAGE = 29
)

// CryptProviderData mirrors CRYPT_PROVIDER_DATA as far as pSigSettings.
type CryptProviderData struct {
	CbStruct            uint32
	WintrustData        *WinTrustData
	OpenedFile          int32
	ParentWindow        windows.Handle
	ActionID            *windows.GUID
	Prov                uintptr
	Error               uint32
	RegSecuritySettings uint32
	RegPolicySettings   uint32
	Functions           uintptr
	TrustStepErrorCount uint32
	TrustStepErrors     *uint32
	StoreCount          uint32
	Stores              *windows.Handle
	Encoding            uint32
	Msg                 windows.Handle
	SignerCount         uint32
	Signers             *CryptProviderSigner
	ProvPrivDataCount   uint32
	ProvPrivData        uintptr
	SubjectChoice       uint32
	PDSip               uintptr
	UsageOID            *byte
	RecallWithState     int32
	SystemTime          windows.Filetime
	CTLSignerUsageOID   *byte
	ProvFlags           uint32
	FinalError          uint32
	RequestUsage        uintptr
	TrustPubSettings    uint32
	UIStateFlags        uint32
	SigState            uintptr
	SigSettings         *WintrustSignatureSettings
}

// CryptProviderSigner mirrors CRYPT_PROVIDER_SGNR.
type CryptProviderSigner struct {
	CbStruct           uint32
	VerifyAsOf         windows.Filetime
	CertChainCount     uint32
	CertChain          uintptr
	SignerType         uint32
	Signer             uintptr
	Error              uint32
	CounterSignerCount uint32
	CounterSigners     uintptr
	ChainContext       *windows.CertChainContext
}

// Signer returns the i-th entry of pasSigners, or nil when out of range.
func (p *CryptProviderData) Signer(i uint32) *CryptProviderSigner {
	if p == nil || p.Signers == nil || i >= p.SignerCount {
		return nil
	}
	return &unsafe.Slice(p.Signers, p.SignerCount)[i]
}

//sys	WTHelperProvDataFromStateData(stateData windows.Handle) (provData *CryptProviderData) = wintrust.WTHelperProvDataFromStateData
//sys	CryptMsgGetParam(msg windows.Handle, paramType uint32, index uint32, data unsafe.Pointer, dataLen *uint32) (err error) = crypt32.CryptMsgGetParam
