package engine

import "strings"

// split locates the onset/nucleus/coda boundaries in a cell slice:
// cells[0:onsetEnd] is the onset, cells[onsetEnd:nucleusEnd] is the
// nucleus, cells[nucleusEnd:] is the coda. Ported from the teacher's
// updateSyllableStructure, which walked a raw rune slice the same way;
// here it walks already-classified Cells instead of re-deriving letter
// class from scratch on every key.
//
// Vowel letters that can also act as a semivowel coda (i, y, o, u —
// spec.md §4.6's "semi-vowels") are always folded into the nucleus
// here rather than split into a trailing coda: "hai", "tôi", "sao" all
// parse as a bare 2-vowel nucleus with no coda, which is also how the
// tone placer expects them (the no-coda diphthong rule already puts
// the tone correctly on the first vowel for these).
func split(cells []Cell) (onsetEnd, nucleusEnd int) {
	n := len(cells)
	i := 0
	for i < n && cells[i].Class == ClassConsonant {
		i++
	}
	onsetEnd = i
	for i < n && cells[i].Class == ClassVowel {
		i++
	}
	nucleusEnd = i
	for i < n && cells[i].Class == ClassConsonant {
		if i+1 < n && cells[i+1].Class == ClassConsonant {
			two := string(cells[i].Base) + string(cells[i+1].Base)
			if validFinals[two] {
				i += 2
				continue
			}
		}
		if validFinals[string(cells[i].Base)] {
			i++
			continue
		}
		break
	}
	return onsetEnd, nucleusEnd
}

// ValidationResult reports why a buffer is or isn't a legal syllable.
type ValidationResult struct {
	Valid  bool
	Reason string
}

// ValidateSyllable checks the cell slice against the closed Vietnamese
// syllable grammar (spec.md §4.6): onset must be a recognized initial,
// coda must be a recognized final, the onset/nucleus-head spelling
// pairs (c/k/q, g/gh, ng/ngh) must be consistent, and — per spec.md
// §4.5 — a stop coda restricts the carried tone to acute or dot-below.
func ValidateSyllable(cells []Cell) ValidationResult {
	onsetEnd, nucleusEnd := split(cells)
	n := len(cells)

	if nucleusEnd == onsetEnd {
		return ValidationResult{Reason: "no_vowel"}
	}

	if onsetEnd > 0 {
		onset := baseString(cells[:onsetEnd])
		onsetLower := strings.ReplaceAll(strings.ToLower(onset), "đ", "d")
		if !validInitials[onsetLower] {
			return ValidationResult{Reason: "invalid_initial"}
		}
	}

	codaCells := cells[nucleusEnd:n]
	if len(codaCells) > 0 {
		coda := strings.ToLower(baseString(codaCells))
		if !validFinals[coda] {
			return ValidationResult{Reason: "invalid_final"}
		}
		if stopCodas[coda] {
			if tone := toneOf(cells); tone != ToneNone && tone != ToneSac && tone != ToneNang {
				return ValidationResult{Reason: "tone_incompatible_with_stop_coda"}
			}
		}
	}

	if onsetEnd > 0 && nucleusEnd > onsetEnd {
		onset := strings.ToLower(baseString(cells[:onsetEnd]))
		head := strings.ToLower(string(cells[onsetEnd].Base))
		if _, bad := spellingRules[onset+head]; bad {
			return ValidationResult{Reason: "spelling_rule_violation"}
		}
	}

	return ValidationResult{Valid: true}
}

// ValidateSyllablePrefix is the gate composition.go consults after
// every transform (spec.md §4.3/§4.4: "After each op, §4.4 validates
// the resulting buffer"). Unlike ValidateSyllable, which judges a
// *complete* syllable, this accepts any cell sequence that is still a
// legal prefix of some syllable in the grammar: an onset typed before
// its vowel exists (e.g. the single cell "đ" partway through
// "được", or "ng" partway through deciding "nga" vs "nghe") is not yet
// a no_vowel error, only an onset that can never lead anywhere
// (invalid_initial) or a part that's already complete and wrong
// (invalid_final, spelling, stop-coda tone) is rejected.
func ValidateSyllablePrefix(cells []Cell) ValidationResult {
	onsetEnd, nucleusEnd := split(cells)
	n := len(cells)

	if nucleusEnd == onsetEnd {
		if onsetEnd == 0 {
			return ValidationResult{Valid: true}
		}
		onset := strings.ReplaceAll(strings.ToLower(baseString(cells[:onsetEnd])), "đ", "d")
		if !isOnsetPrefix(onset) {
			return ValidationResult{Reason: "invalid_initial"}
		}
		return ValidationResult{Valid: true}
	}

	if onsetEnd > 0 {
		onset := strings.ReplaceAll(strings.ToLower(baseString(cells[:onsetEnd])), "đ", "d")
		if !validInitials[onset] {
			return ValidationResult{Reason: "invalid_initial"}
		}
	}

	if onsetEnd > 0 && nucleusEnd > onsetEnd {
		onset := strings.ToLower(baseString(cells[:onsetEnd]))
		head := strings.ToLower(string(cells[onsetEnd].Base))
		if _, bad := spellingRules[onset+head]; bad {
			return ValidationResult{Reason: "spelling_rule_violation"}
		}
	}

	codaCells := cells[nucleusEnd:n]
	if len(codaCells) > 0 {
		coda := strings.ToLower(baseString(codaCells))
		if !validFinals[coda] {
			return ValidationResult{Reason: "invalid_final"}
		}
		if stopCodas[coda] {
			if tone := toneOf(cells); tone != ToneNone && tone != ToneSac && tone != ToneNang {
				return ValidationResult{Reason: "tone_incompatible_with_stop_coda"}
			}
		}
	}

	return ValidationResult{Valid: true}
}

// isOnsetPrefix reports whether s is itself a valid initial or a
// prefix of one (so the caller can keep accepting onset letters one at
// a time, e.g. "n" -> "ng" -> "ngh").
func isOnsetPrefix(s string) bool {
	if s == "" || validInitials[s] {
		return true
	}
	for onset := range validInitials {
		if strings.HasPrefix(onset, s) {
			return true
		}
	}
	return false
}

func baseString(cells []Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		sb.WriteRune(c.Base)
	}
	return sb.String()
}
