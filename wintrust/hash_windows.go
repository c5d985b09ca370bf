/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package wintrust

const (
	CALG_MD2 = 0x00008001
	CALG_MD5 = 0x00008003

	HP_ALGID   = 0x0001
	HP_HASHVAL = 0x0002

	MS_DEF_PROV = "Microsoft Base Cryptographic Provider v1.0"
)

//sys	CryptCreateHash(prov windows.Handle, algID uint32, key windows.Handle, flags uint32, hash *windows.Handle) (err error) = advapi32.CryptCreateHash
//sys	CryptHashData(hash windows.Handle, data *byte, dataLen uint32, flags uint32) (err error) = advapi32.CryptHashData
//sys	CryptGetHashParam(hash windows.Handle, param uint32, data *byte, dataLen *uint32, flags uint32) (err error) = advapi32.CryptGetHashParam
//sys	CryptDestroyHash(hash windows.Handle) (err error) = advapi32.CryptDestroyHash
