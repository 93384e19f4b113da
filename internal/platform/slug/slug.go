// Package slug derives URL/key-safe tokens from display names. Slugs are
// uniqueness-key material, never presentation labels.
package slug

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// FallbackTeam is the token used when a team name slugs to nothing.
	FallbackTeam = "n-a"
	// FallbackPlayer is the token used when a player name slugs to nothing.
	FallbackPlayer = "player"
)

// stripMarks decomposes characters and drops the combining marks, so
// "é" becomes "e" and "ü" becomes "u".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ligatures covers the handful of letters NFD cannot decompose to ASCII.
var ligatures = strings.NewReplacer(
	"œ", "oe",
	"æ", "ae",
	"ø", "o",
	"ß", "ss",
	"đ", "d",
	"ł", "l",
)

// Make normalizes name into a lowercase ASCII token: diacritics are
// transliterated, runs of non-alphanumerics collapse to a single hyphen and
// leading/trailing hyphens are stripped. An empty result yields fallback.
// Deterministic and idempotent.
func Make(name, fallback string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = ligatures.Replace(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	pendingHyphen := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	out := b.String()
	if out == "" {
		return fallback
	}
	return out
}

// MakeSalted is the interactive-admin variant that salts the token with the
// player's overall rating. The bulk importer intentionally does NOT use this:
// the two code paths diverge in the original system and that divergence is
// preserved here (see DESIGN.md).
func MakeSalted(name string, overall int) string {
	return Make(name, FallbackPlayer) + "-" + strconv.Itoa(overall)
}
