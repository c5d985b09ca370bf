/* SPDX-License-Identifier: MIT
 *
 * Copyright (C) 2019-2022 WireGuard LLC. All Rights Reserved.
 */

package l18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type entry struct {
	tag language.Tag
	key string
	msg string
}

var entries = [...]entry{
	{language.English, "[EnumerationSeparator]", ", "},
	{language.German, "[EnumerationSeparator]", ", "},
	{language.Japanese, "[EnumerationSeparator]", "、"},
	{language.SimplifiedChinese, "[EnumerationSeparator]", "、"},

	{language.German, "Signer %d: %s", "Signatur %d: %s"},
	{language.German, "No signatures", "Keine Signaturen"},
	{language.German, "File has been tampered with", "Datei wurde manipuliert"},
	{language.German, "Publisher", "Herausgeber"},
	{language.German, "More information", "Weitere Informationen"},
	{language.German, "Signed at %s", "Signiert am %s"},
	{language.German, "Kind", "Art"},
	{language.German, "Subject", "Antragsteller"},
	{language.German, "Issuer", "Aussteller"},
	{language.German, "Valid", "Gültig"},
	{language.German, "Fingerprint", "Fingerabdruck"},
	{language.German, "%s to %s (%s)", "%s bis %s (%s)"},
	{language.German, "Unable to compute first page hash", "Hash der ersten Seite konnte nicht berechnet werden"},
	{language.German, "%d of %d files failed", "%d von %d Dateien fehlgeschlagen"},
	{language.German, "Signed by %s", "Signiert von %s"},
	{language.German, "Unsigned build", "Unsignierter Build"},
	{language.German, "Some certificates could not be fingerprinted", "Einige Zertifikate konnten nicht gehasht werden"},
	{language.German, "Some files could not be hashed", "Einige Dateien konnten nicht gehasht werden"},
	{language.German, "Flat file", "Flache Datei"},
	{language.German, "First page", "Erste Seite"},
}

func init() {
	for _, e := range entries {
		if err := message.SetString(e.tag, e.key, e.msg); err != nil {
			panic(err)
		}
	}
}
