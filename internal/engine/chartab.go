package engine

// Character tables: the closed repertoire of Vietnamese letters, the
// tone/vowel-mark -> Unicode codepoint maps, and the onset/coda
// consonant sets the validator checks against. Ported from the
// teacher's unicode.go and validation.go tables; composition always
// applies the vowel mark first, then the tone, exactly as the teacher
// does, which is why a single two-step lookup (mark table, then tone
// table keyed on the marked letter) covers every combination without a
// combined three-way table.

// vowelTones maps a (possibly already vowel-marked) lowercase base
// letter to its six tone variants.
var vowelTones = map[rune]map[ToneMark]rune{
	'a': {ToneNone: 'a', ToneSac: 'á', ToneHuyen: 'à', ToneHoi: 'ả', ToneNga: 'ã', ToneNang: 'ạ'},
	'ă': {ToneNone: 'ă', ToneSac: 'ắ', ToneHuyen: 'ằ', ToneHoi: 'ẳ', ToneNga: 'ẵ', ToneNang: 'ặ'},
	'â': {ToneNone: 'â', ToneSac: 'ấ', ToneHuyen: 'ầ', ToneHoi: 'ẩ', ToneNga: 'ẫ', ToneNang: 'ậ'},
	'e': {ToneNone: 'e', ToneSac: 'é', ToneHuyen: 'è', ToneHoi: 'ẻ', ToneNga: 'ẽ', ToneNang: 'ẹ'},
	'ê': {ToneNone: 'ê', ToneSac: 'ế', ToneHuyen: 'ề', ToneHoi: 'ể', ToneNga: 'ễ', ToneNang: 'ệ'},
	'i': {ToneNone: 'i', ToneSac: 'í', ToneHuyen: 'ì', ToneHoi: 'ỉ', ToneNga: 'ĩ', ToneNang: 'ị'},
	'o': {ToneNone: 'o', ToneSac: 'ó', ToneHuyen: 'ò', ToneHoi: 'ỏ', ToneNga: 'õ', ToneNang: 'ọ'},
	'ô': {ToneNone: 'ô', ToneSac: 'ố', ToneHuyen: 'ồ', ToneHoi: 'ổ', ToneNga: 'ỗ', ToneNang: 'ộ'},
	'ơ': {ToneNone: 'ơ', ToneSac: 'ớ', ToneHuyen: 'ờ', ToneHoi: 'ở', ToneNga: 'ỡ', ToneNang: 'ợ'},
	'u': {ToneNone: 'u', ToneSac: 'ú', ToneHuyen: 'ù', ToneHoi: 'ủ', ToneNga: 'ũ', ToneNang: 'ụ'},
	'ư': {ToneNone: 'ư', ToneSac: 'ứ', ToneHuyen: 'ừ', ToneHoi: 'ử', ToneNga: 'ữ', ToneNang: 'ự'},
	'y': {ToneNone: 'y', ToneSac: 'ý', ToneHuyen: 'ỳ', ToneHoi: 'ỷ', ToneNga: 'ỹ', ToneNang: 'ỵ'},
}

// vowelMarks maps a base letter plus a VowelMark to the resulting
// letter. 'd' maps under VowelDBar even though đ is a consonant, not a
// vowel, because the mark-application step in Render/applyVowelMark is
// shared between the two cases.
var vowelMarks = map[rune]map[VowelMark]rune{
	'a': {VowelBreve: 'ă', VowelHat: 'â'},
	'e': {VowelHat: 'ê'},
	'o': {VowelHat: 'ô', VowelHorn: 'ơ'},
	'u': {VowelHorn: 'ư'},
	'd': {VowelDBar: 'đ'},
}

// applyVowelMark returns the marked form of a lowercase base letter,
// or the letter unchanged if the mark doesn't apply to it.
func applyVowelMark(base rune, mark VowelMark) rune {
	if mark == VowelNone {
		return base
	}
	if marks, ok := vowelMarks[base]; ok {
		if r, ok := marks[mark]; ok {
			return r
		}
	}
	return base
}

// applyTone returns the toned form of a (possibly already
// vowel-marked) lowercase letter, or the letter unchanged if it
// doesn't carry tones (consonants).
func applyTone(base rune, tone ToneMark) rune {
	if tones, ok := vowelTones[base]; ok {
		if r, ok := tones[tone]; ok {
			return r
		}
	}
	return base
}

// isMarkedVowel reports whether a cell already carries a
// circumflex/breve/horn mark (used by the tone placer's rule 1). Cells
// keep their base letter and vowel mark as separate fields (unlike a
// flat rune buffer), so this checks Mark rather than a literal
// composed letter.
func isMarkedVowel(c Cell) bool {
	switch c.Mark {
	case VowelHat, VowelBreve, VowelHorn:
		return true
	}
	return false
}

func isVowelBase(r rune) bool {
	switch r {
	case 'a', 'ă', 'â', 'e', 'ê', 'i', 'o', 'ô', 'ơ', 'u', 'ư', 'y':
		return true
	}
	return false
}

func isConsonantBase(r rune) bool {
	switch r {
	case 'b', 'c', 'd', 'đ', 'g', 'h', 'k', 'l', 'm', 'n', 'p', 'q', 'r', 's', 't', 'v', 'x':
		return true
	}
	return false
}

func classify(r rune) CellClass {
	switch {
	case isVowelBase(r):
		return ClassVowel
	case isConsonantBase(r):
		return ClassConsonant
	default:
		return ClassOther
	}
}

// validInitials are valid Vietnamese onset consonant clusters (phụ âm đầu).
var validInitials = map[string]bool{
	"b": true, "c": true, "d": true, "đ": true, "g": true, "h": true,
	"k": true, "l": true, "m": true, "n": true, "p": true, "q": true,
	"r": true, "s": true, "t": true, "v": true, "x": true,
	"ch": true, "gh": true, "gi": true, "kh": true, "ng": true,
	"nh": true, "ph": true, "qu": true, "th": true, "tr": true,
	"ngh": true,
}

// validFinals are valid Vietnamese coda consonants/semivowels (phụ âm cuối).
var validFinals = map[string]bool{
	"c": true, "m": true, "n": true, "p": true, "t": true,
	"ch": true, "ng": true, "nh": true,
	"i": true, "y": true, "o": true, "u": true,
}

// stopCodas are the finals that restrict tone to acute/dot-below
// (spec.md §4.5, §8).
var stopCodas = map[string]bool{
	"p": true, "t": true, "c": true, "ch": true,
}

// spellingRules maps an invalid onset+nucleus-head combination to the
// orthographically correct one (c/k/q, g/gh, ng/ngh before front vowels).
var spellingRules = map[string]string{
	"ce": "ke", "ci": "ki", "cy": "ky",
	"ka": "ca", "ko": "co", "ku": "cu",
	"ge": "ghe",
	"nge": "nghe", "ngi": "nghi",
	"gha": "ga", "gho": "go", "ghu": "gu",
	"ngha": "nga", "ngho": "ngo", "nghu": "ngu",
}
