//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package l18n

import (
	"errors"
	"os"
	"strings"
)

func getUserLanguages() ([]string, error) {
	return languagesFromEnvironment(os.Getenv)
}

// languagesFromEnvironment follows the POSIX precedence of LANGUAGE, LC_ALL,
// LC_MESSAGES and LANG, turning "de_DE.UTF-8" into "de-DE".
func languagesFromEnvironment(getenv func(string) string) ([]string, error) {
	var languages []string
	if list := getenv("LANGUAGE"); list != "" {
		languages = append(languages, strings.Split(list, ":")...)
	}
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := getenv(name); value != "" {
			languages = append(languages, value)
			break
		}
	}
	var tags []string
	for _, l := range languages {
		if i := strings.IndexAny(l, ".@"); i >= 0 {
			l = l[:i]
		}
		if l == "" || l == "C" || l == "POSIX" {
			continue
		}
		tags = append(tags, strings.ReplaceAll(l, "_", "-"))
	}
	if len(tags) == 0 {
		return nil, errors.New("no language configured")
	}
	return tags, nil
}
