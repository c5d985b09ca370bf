/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package version

import (
	"fmt"
	"unsafe"
)

type osVersionInfo struct {
	osVersionInfoSize uint32
	majorVersion      uint32
	minorVersion      uint32
	buildNumber       uint32
	platformId        uint32
	csdVersion        [128]uint16
	servicePackMajor  uint16
	servicePackMinor  uint16
	suiteMask         uint16
	productType       byte
	reserved          byte
}

//sys rtlGetVersion(versionInfo *osVersionInfo) (nterr uint32) = ntdll.RtlGetVersion

func OsName() string {
	versionInfo := &osVersionInfo{osVersionInfoSize: uint32(unsafe.Sizeof(osVersionInfo{}))}
	if rtlGetVersion(versionInfo) != 0 {
		return "Windows Unknown"
	}
	return formatOsName(versionInfo.productType, versionInfo.majorVersion, versionInfo.minorVersion, versionInfo.buildNumber)
}

const (
	vmNTWorkstation      = 1
	vmNTDomainController = 2
	vmNTServer           = 3
)

func formatOsName(productType byte, major, minor, build uint32) string {
	name := "Windows"
	switch productType {
	case vmNTServer:
		name += " Server"
	case vmNTDomainController:
		name += " Controller"
	case vmNTWorkstation:
		// Windows 11 still reports itself as 10.0.
		if major == 10 && build >= 22000 {
			name += " 11"
		}
	}
	return fmt.Sprintf("%s %d.%d.%d", name, major, minor, build)
}
