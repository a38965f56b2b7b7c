package model

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// DesktopSuffix is stripped from desktop entry ids to form application
// identifiers.
const DesktopSuffix = ".desktop"

// NormalizeAppID turns a desktop entry id ("org.gnome.Terminal.desktop")
// into the application identifier stored in the whitelist
// ("org.gnome.Terminal").
func NormalizeAppID(id string) string {
	return strings.TrimSuffix(strings.TrimSpace(id), DesktopSuffix)
}

// DisplayName returns a human-friendly name for an application identifier:
// the last dot-separated segment with its first letter upper-cased.
// "org.gnome.Terminal" becomes "Terminal"; ids without dots are returned
// unchanged.
func DisplayName(appID string) string {
	parts := strings.Split(appID, ".")
	if len(parts) < 2 {
		return appID
	}
	name := parts[len(parts)-1]
	if name == "" {
		return appID
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}
