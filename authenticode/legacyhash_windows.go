/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package authenticode

import (
	"github.com/sigscope/sigscope/wintrust"
	"golang.org/x/sys/windows"
)

// acquireProvider opens a verify-only context on the named provider, or on
// the default provider when name is empty.
func acquireProvider(name string) (windows.Handle, error) {
	var provider *uint16
	if name != "" {
		var err error
		provider, err = windows.UTF16PtrFromString(name)
		if err != nil {
			return 0, nativeCryptoError("CryptAcquireContext", err)
		}
	}
	var prov windows.Handle
	err := windows.CryptAcquireContext(&prov, nil, provider, windows.PROV_RSA_FULL, windows.CRYPT_VERIFYCONTEXT)
	if err != nil {
		return 0, nativeCryptoError("CryptAcquireContext", err)
	}
	return prov, nil
}

func legacyHash(data []byte) ([]byte, error) {
	prov, err := acquireProvider("")
	if err != nil {
		prov, err = acquireProvider(wintrust.MS_DEF_PROV)
		if err != nil {
			return nil, err
		}
	}
	defer windows.CryptReleaseContext(prov, 0)

	var hash windows.Handle
	err = wintrust.CryptCreateHash(prov, wintrust.CALG_MD2, 0, 0, &hash)
	if err != nil {
		return nil, nativeCryptoError("CryptCreateHash", err)
	}
	defer wintrust.CryptDestroyHash(hash)

	var p *byte
	if len(data) > 0 {
		p = &data[0]
	}
	err = wintrust.CryptHashData(hash, p, uint32(len(data)), 0)
	if err != nil {
		return nil, nativeCryptoError("CryptHashData", err)
	}

	digest, err := sizedBuffer(func() (uint32, error) {
		var size uint32
		err := wintrust.CryptGetHashParam(hash, wintrust.HP_HASHVAL, nil, &size, 0)
		return size, err
	}, func(buf []byte) (uint32, error) {
		size := uint32(len(buf))
		err := wintrust.CryptGetHashParam(hash, wintrust.HP_HASHVAL, &buf[0], &size, 0)
		return size, err
	})
	if err != nil {
		return nil, nativeCryptoError("CryptGetHashParam", err)
	}
	return digest, nil
}
