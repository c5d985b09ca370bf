/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package l18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestCatalog(t *testing.T) {
	german := message.NewPrinter(language.German)
	assert.Equal(t, "Signatur 2: Acme", german.Sprintf("Signer %d: %s", 2, "Acme"))
	assert.Equal(t, "Keine Signaturen", german.Sprintf("No signatures"))
	assert.Equal(t, "Einige Zertifikate konnten nicht gehasht werden", german.Sprintf("Some certificates could not be fingerprinted"))

	english := message.NewPrinter(language.English)
	assert.Equal(t, "Signer 2: Acme", english.Sprintf("Signer %d: %s", 2, "Acme"))
	assert.Equal(t, ", ", english.Sprintf("[EnumerationSeparator]"))

	japanese := message.NewPrinter(language.Japanese)
	assert.Equal(t, "、", japanese.Sprintf("[EnumerationSeparator]"))
}
