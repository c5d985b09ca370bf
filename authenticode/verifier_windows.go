/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"errors"
	"runtime"
	"time"
	"unsafe"

	"github.com/sigscope/sigscope/wintrust"
	"golang.org/x/sys/windows"
)

const nativeAvailable = true

const _CERT_NAME_ISSUER_FLAG = 0x1

// NativeVerifier drives WinVerifyTrust, one WSS_VERIFY_SPECIFIC round per signature index.
type NativeVerifier struct {
	RevocationChecks bool
}

func newNativeVerifier(config VerifierConfig) (Verifier, error) {
	return &NativeVerifier{RevocationChecks: config.RevocationChecks}, nil
}

type nativeRound struct {
	data     *wintrust.WinTrustData
	file     *wintrust.WinTrustFileInfo
	settings *wintrust.WintrustSignatureSettings
	code     uint32
	closed   bool
}

func (v *NativeVerifier) Verify(path string, index uint32) (Round, error) {
	path16, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	round := &nativeRound{
		file: &wintrust.WinTrustFileInfo{
			CbStruct: uint32(unsafe.Sizeof(wintrust.WinTrustFileInfo{})),
			FilePath: path16,
		},
		settings: &wintrust.WintrustSignatureSettings{
			CbStruct: uint32(unsafe.Sizeof(wintrust.WintrustSignatureSettings{})),
			Index:    index,
			Flags:    wintrust.WSS_VERIFY_SPECIFIC | wintrust.WSS_GET_SECONDARY_SIG_COUNT,
		},
	}
	round.data = &wintrust.WinTrustData{
		CbStruct:                        uint32(unsafe.Sizeof(wintrust.WinTrustData{})),
		UIChoice:                        wintrust.WTD_UI_NONE,
		RevocationChecks:                wintrust.WTD_REVOKE_NONE,
		UnionChoice:                     wintrust.WTD_CHOICE_FILE,
		FileOrCatalogOrBlobOrSgnrOrCert: unsafe.Pointer(round.file),
		StateAction:                     wintrust.WTD_STATEACTION_VERIFY,
		ProvFlags:                       wintrust.WTD_CACHE_ONLY_URL_RETRIEVAL | wintrust.WTD_REVOCATION_CHECK_NONE,
		SignatureSettings:               round.settings,
	}
	if v.RevocationChecks {
		round.data.RevocationChecks = wintrust.WTD_REVOKE_WHOLECHAIN
		round.data.ProvFlags = wintrust.WTD_REVOCATION_CHECK_CHAIN
	}
	round.code = statusCode(wintrust.WinVerifyTrust(windows.InvalidHandle, &wintrust.WINTRUST_ACTION_GENERIC_VERIFY_V2, round.data))
	return round, nil
}

func statusCode(err error) uint32 {
	if err == nil {
		return CodeSuccess
	}
	var errno windows.Errno
	if errors.As(err, &errno) {
		return uint32(errno)
	}
	return CodeSubjectNotTrusted
}

func (r *nativeRound) Code() uint32 { return r.code }

func (r *nativeRound) SecondaryCount() uint32 { return r.settings.SecondarySigs }

func (r *nativeRound) HasState() bool { return r.data.StateData != 0 }

func (r *nativeRound) providerData() *wintrust.CryptProviderData {
	if r.data.StateData == 0 {
		return nil
	}
	return wintrust.WTHelperProvDataFromStateData(r.data.StateData)
}

func (r *nativeRound) Message() ([]byte, error) {
	prov := r.providerData()
	if prov == nil || prov.Msg == 0 {
		return nil, errors.New("verification round has no message")
	}
	msg, err := sizedBuffer(func() (uint32, error) {
		var size uint32
		err := wintrust.CryptMsgGetParam(prov.Msg, wintrust.CMSG_ENCODED_MESSAGE, 0, nil, &size)
		return size, err
	}, func(buf []byte) (uint32, error) {
		size := uint32(len(buf))
		err := wintrust.CryptMsgGetParam(prov.Msg, wintrust.CMSG_ENCODED_MESSAGE, 0, unsafe.Pointer(&buf[0]), &size)
		return size, err
	})
	if err != nil {
		return nil, nativeCryptoError("CryptMsgGetParam", err)
	}
	return msg, nil
}

// Chain copies the first simple chain of the first signer out of the
// provider's chain context, leaf first.
func (r *nativeRound) Chain() ([]CertificateInfo, error) {
	signer := r.providerData().Signer(0)
	if signer == nil || signer.ChainContext == nil || signer.ChainContext.ChainCount == 0 {
		return nil, nil
	}
	simple := unsafe.Slice(signer.ChainContext.Chains, signer.ChainContext.ChainCount)[0]
	if simple == nil || simple.NumElements == 0 {
		return nil, nil
	}
	elements := unsafe.Slice(simple.Elements, simple.NumElements)
	certs := make([]CertificateInfo, 0, len(elements))
	for _, element := range elements {
		if element == nil || element.CertContext == nil {
			continue
		}
		certs = append(certs, copyCertificate(element.CertContext))
	}
	return certs, nil
}

func copyCertificate(cert *windows.CertContext) CertificateInfo {
	info := CertificateInfo{
		Raw:       append([]byte(nil), unsafe.Slice(cert.EncodedCert, cert.Length)...),
		SubjectCN: certName(cert, 0),
		IssuerCN:  certName(cert, _CERT_NAME_ISSUER_FLAG),
	}
	if cert.CertInfo != nil {
		info.NotBefore = filetimeToTime(cert.CertInfo.NotBefore)
		info.NotAfter = filetimeToTime(cert.CertInfo.NotAfter)
	}
	return info
}

func filetimeToTime(ft windows.Filetime) time.Time {
	return time.Unix(0, ft.Nanoseconds()).UTC()
}

func certName(cert *windows.CertContext, flags uint32) string {
	name16, err := sizedBuffer(func() (uint32, error) {
		return windows.CertGetNameString(cert, windows.CERT_NAME_SIMPLE_DISPLAY_TYPE, flags, nil, nil, 0), nil
	}, func(buf []uint16) (uint32, error) {
		return windows.CertGetNameString(cert, windows.CERT_NAME_SIMPLE_DISPLAY_TYPE, flags, nil, &buf[0], uint32(len(buf))), nil
	})
	if err != nil || len(name16) == 0 {
		return ""
	}
	return windows.UTF16ToString(name16)
}

func (r *nativeRound) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.data.StateAction = wintrust.WTD_STATEACTION_CLOSE
	err := wintrust.WinVerifyTrust(windows.InvalidHandle, &wintrust.WINTRUST_ACTION_GENERIC_VERIFY_V2, r.data)
	runtime.KeepAlive(r.file)
	runtime.KeepAlive(r.settings)
	return err
}
