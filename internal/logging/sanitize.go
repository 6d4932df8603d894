// Unifinder - University Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/unifinder

package logging

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxLoggedInputLen bounds user-supplied strings written to the log.
const maxLoggedInputLen = 128

// SanitizeInput makes a user-supplied string safe to log: control characters
// (including newlines) are replaced and the result is truncated.
func SanitizeInput(s string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '_'
		}
		return r
	}, s)
	return truncate(clean, maxLoggedInputLen)
}

// SanitizeUserID masks a user ID, keeping the first and last four characters.
// Example: "user-12345678" -> "user...5678"
func SanitizeUserID(userID string) string {
	if userID == "" {
		return ""
	}
	if len(userID) <= 8 {
		return "***"
	}
	return SanitizeInput(userID[:4]) + "..." + SanitizeInput(userID[len(userID)-4:])
}

// SanitizeSecret hides a credential entirely, reporting only whether one was present.
func SanitizeSecret(secret string) string {
	if secret == "" {
		return ""
	}
	return "[redacted]"
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Do not split a multi-byte rune.
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
