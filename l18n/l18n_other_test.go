//go:build !windows

/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package l18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func environment(values map[string]string) func(string) string {
	return func(name string) string { return values[name] }
}

func TestLanguagesFromEnvironment(t *testing.T) {
	languages, err := languagesFromEnvironment(environment(map[string]string{
		"LANGUAGE": "de_AT:fr",
		"LC_ALL":   "",
		"LANG":     "en_US.UTF-8",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"de-AT", "fr", "en-US"}, languages)

	languages, err = languagesFromEnvironment(environment(map[string]string{
		"LC_MESSAGES": "ja_JP.eucJP@euro",
		"LANG":        "en_US.UTF-8",
	}))
	require.NoError(t, err)
	assert.Equal(t, []string{"ja-JP"}, languages)

	_, err = languagesFromEnvironment(environment(map[string]string{"LANG": "C.UTF-8"}))
	assert.Error(t, err)
}
