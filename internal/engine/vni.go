package engine

import "unicode"

// VNI implements the VNI Decoder: digits 1-5 place tones, 6-9 place
// the circumflex/horn/breve/stroke vowel marks.
type VNI struct{}

func NewVNI() *VNI { return &VNI{} }

func (v *VNI) Name() string { return "VNI" }

var vniToneKeys = map[rune]ToneMark{
	'1': ToneSac,
	'2': ToneHuyen,
	'3': ToneHoi,
	'4': ToneNga,
	'5': ToneNang,
}

var vniMarkKeys = map[rune]VowelMark{
	'6': VowelHat,
	'7': VowelHorn,
	'8': VowelBreve,
	'9': VowelDBar,
}

// vniMarkTargets lists, for each mark, which base letters accept it —
// used to find which cell in the nucleus (or the onset, for đ) a VNI
// digit should transform.
var vniMarkTargets = map[VowelMark]map[rune]bool{
	VowelHat:   {'a': true, 'e': true, 'o': true},
	VowelHorn:  {'o': true, 'u': true},
	VowelBreve: {'a': true},
	VowelDBar:  {'d': true},
}

func (v *VNI) IsToneKey(r rune) (ToneMark, bool) {
	tone, ok := vniToneKeys[r]
	return tone, ok
}

// VNI has no raw-mode prefix convention of its own beyond the shared
// set the façade applies uniformly.
func (v *VNI) IsRawPrefix(r rune) bool {
	switch r {
	case '\\', '@', '#', ':', '/':
		return true
	}
	return false
}

// IsWordBreak reports whether r ends the current syllable. VNI spends
// digits 1-9 as tone/mark keys, so unlike Telex no digit breaks a word
// on its own.
func (v *VNI) IsWordBreak(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if unicode.IsDigit(r) {
		return false
	}
	if unicode.IsLetter(r) {
		return false
	}
	return true
}

func (v *VNI) Apply(buf *Buffer, r rune, cfg *Config) bool {
	// Tone digits.
	if tone, ok := v.IsToneKey(r); ok {
		cells := buf.Cells()
		_, nucleusEnd := split(cells)
		if nucleusEnd > 0 {
			if curKey, has := ToneKeyOf(cells); has && curKey == r {
				ClearTone(cells)
				buf.Append(Cell{Base: r, Class: ClassOther})
				buf.PushRawKey(r)
				return false
			}
			pos := findTonePosition(cells, cfg.Modern)
			ClearTone(cells)
			c := buf.Cell(pos)
			c.Tone = tone
			c.ToneKey = r
			buf.Set(pos, c)
			buf.PushRawKey(r)
			return true
		}
		// No vowel yet: a bare digit is a literal, not a tone.
		buf.Append(Cell{Base: r, Class: ClassOther})
		buf.PushRawKey(r)
		return false
	}

	// Vowel/stroke mark digits.
	if mark, ok := vniMarkKeys[r]; ok {
		targets := vniMarkTargets[mark]

		if mark == VowelDBar {
			cells := buf.cells[:buf.n]
			for i := range cells {
				if cells[i].Class == ClassConsonant && cells[i].Base == 'd' {
					if cells[i].Mark == VowelDBar && cells[i].MarkKey == r {
						cells[i].Mark = VowelNone
						cells[i].MarkKey = 0
						buf.Append(Cell{Base: r, Class: ClassOther})
						buf.PushRawKey(r)
						return false
					}
					cells[i].Mark = VowelDBar
					cells[i].MarkKey = r
					buf.PushRawKey(r)
					return true
				}
			}
			buf.Append(Cell{Base: r, Class: ClassOther})
			buf.PushRawKey(r)
			return false
		}

		cells := buf.cells[:buf.n]
		for i := len(cells) - 1; i >= 0; i-- {
			if cells[i].Class != ClassVowel || !targets[cells[i].Base] {
				continue
			}
			if cells[i].Mark == mark && cells[i].MarkKey == r {
				cells[i].Mark = VowelNone
				cells[i].MarkKey = 0
				buf.Append(Cell{Base: r, Class: ClassOther})
				buf.PushRawKey(r)
				return false
			}
			cells[i].Mark = mark
			cells[i].MarkKey = r
			buf.PushRawKey(r)
			return true
		}
		buf.Append(Cell{Base: r, Class: ClassOther})
		buf.PushRawKey(r)
		return false
	}

	// Literal letter.
	lower := unicode.ToLower(r)
	buf.Append(Cell{Base: lower, Upper: unicode.IsUpper(r), Class: classify(lower)})
	buf.PushRawKey(r)
	return false
}
