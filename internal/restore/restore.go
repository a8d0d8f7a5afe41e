// Package restore implements the English auto-restore patterns
// (spec.md §4.9): a committed word whose raw keys match one of these
// shapes is restored to its literal Latin keystrokes instead of its
// Vietnamese render. Every pattern is a necessary-not-sufficient check
// against legal Vietnamese syllable shape, so false positives are
// tolerated and false negatives are expected (e.g. "mix" parses as the
// legal syllable "mĩ" and is never restored here).
package restore

import "strings"

var vowels = map[byte]bool{'a': true, 'e': true, 'i': true, 'o': true, 'u': true, 'y': true}

// modifierKeys are the Telex tone keys, which a Vietnamese onset never
// contains as plain letters mid-syllable the way English does.
var modifierKeys = map[byte]bool{'s': true, 'f': true, 'r': true, 'x': true, 'j': true}

var stopConsonants = map[byte]bool{'p': true, 't': true, 'c': true}

func isVowel(b byte) bool      { return vowels[b] }
func isConsonant(b byte) bool  { return !vowels[b] }

// IsEnglishLike reports whether raw — the literal lowercase ASCII keys
// typed for one committed word — matches a documented English-like
// pattern.
func IsEnglishLike(raw string) bool {
	w := strings.ToLower(raw)
	if w == "" {
		return false
	}
	return hasModifierStop(w) ||
		hasEiCoda(w) ||
		hasPAirCoda(w) ||
		hasVowelModifierVowel(w) ||
		hasLeadingWConsonant(w) ||
		hasWVowelW(w) ||
		hasLeadingF(w)
}

// hasModifierStop matches a tone-key letter immediately followed by a
// stop consonant anywhere in the word ("text", "expect"): no
// Vietnamese onset cluster puts s/f/r/x/j directly before p/t/c.
func hasModifierStop(w string) bool {
	for i := 0; i+1 < len(w); i++ {
		if modifierKeys[w[i]] && stopConsonants[w[i+1]] {
			return true
		}
	}
	return false
}

// hasEiCoda matches "ei" followed later by a consonant coda ("their",
// "weird"): "ei" is not a Vietnamese nucleus.
func hasEiCoda(w string) bool {
	idx := strings.Index(w, "ei")
	if idx < 0 {
		return false
	}
	for i := idx + 2; i < len(w); i++ {
		if isConsonant(w[i]) {
			return true
		}
	}
	return false
}

// hasPAirCoda matches a leading "p" onset with an "ai" nucleus and a
// trailing coda consonant ("pair"): a bare "p-" onset is vanishingly
// rare in Vietnamese.
func hasPAirCoda(w string) bool {
	if len(w) < 2 || w[0] != 'p' {
		return false
	}
	idx := strings.Index(w, "ai")
	if idx < 0 {
		return false
	}
	for i := idx + 2; i < len(w); i++ {
		if isConsonant(w[i]) {
			return true
		}
	}
	return false
}

// hasVowelModifierVowel matches a word starting with a bare vowel,
// then a tone-key letter, then another vowel ("use", "user"): every
// Vietnamese syllable requires an onset or is a single vowel nucleus,
// never vowel-consonant-vowel with no onset consonant cluster.
func hasVowelModifierVowel(w string) bool {
	if len(w) < 3 {
		return false
	}
	return isVowel(w[0]) && modifierKeys[w[1]] && isVowel(w[2])
}

// combinableAfterW are the only vowels Telex's w-combiner ever
// produces (aw/ow/uw -> ă/ơ/ư); "wi", "we", "wy" are as impossible as
// a consonant following a leading w.
var combinableAfterW = map[byte]bool{'a': true, 'o': true, 'u': true}

// hasLeadingWConsonant matches a leading "w" not followed by a
// combinable vowel ("window", "write"): Telex's w-combiner only ever
// precedes a/o/u.
func hasLeadingWConsonant(w string) bool {
	if len(w) < 2 || w[0] != 'w' {
		return false
	}
	return !combinableAfterW[w[1]]
}

// hasWVowelW matches "w" + vowel + "w" ("wow"): a double-w nucleus is
// impossible under either input method.
func hasWVowelW(w string) bool {
	for i := 0; i+2 < len(w); i++ {
		if w[i] == 'w' && isVowel(w[i+1]) && w[i+2] == 'w' {
			return true
		}
	}
	return false
}

// hasLeadingF matches a leading "f" ("file", "firebase"): f is not a
// Vietnamese initial consonant.
func hasLeadingF(w string) bool {
	return w[0] == 'f'
}
