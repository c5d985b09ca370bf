/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package l18n

import (
	"golang.org/x/sys/windows"
)

// getUserLanguages prefers the user's UI languages and falls back to the system's.
func getUserLanguages() ([]string, error) {
	languages, err := windows.GetUserPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
	if err == nil && len(languages) > 0 {
		return languages, nil
	}
	return windows.GetSystemPreferredUILanguages(windows.MUI_LANGUAGE_NAME)
}
