/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package wintrust

// ComputeFirstPageHash is undocumented. Passing a nil buffer returns the required size; zero means failure.
//sys	ComputeFirstPageHash(algID *uint16, filename *uint16, buffer unsafe.Pointer, bufferSize uint32) (size uint32) = wintrust.ComputeFirstPageHash
