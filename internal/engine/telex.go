package engine

import "unicode"

// Telex implements the Telex Decoder: tone keys s/f/r/x/j, digraph
// vowel marks aa/ee/oo/dd, and the horn/breve combiner w.
type Telex struct{}

func NewTelex() *Telex { return &Telex{} }

func (t *Telex) Name() string { return "Telex" }

var telexToneKeys = map[rune]ToneMark{
	's': ToneSac,
	'f': ToneHuyen,
	'r': ToneHoi,
	'x': ToneNga,
	'j': ToneNang,
}

func (t *Telex) IsToneKey(r rune) (ToneMark, bool) {
	tone, ok := telexToneKeys[unicode.ToLower(r)]
	return tone, ok
}

func (t *Telex) IsRawPrefix(r rune) bool {
	switch r {
	case '\\', '@', '#', ':', '/':
		return true
	}
	return false
}

// IsWordBreak reports whether r ends the current syllable. Telex gives
// digits no modifier meaning, so they break a word like any other
// non-letter.
func (t *Telex) IsWordBreak(r rune) bool {
	if unicode.IsSpace(r) {
		return true
	}
	if unicode.IsDigit(r) {
		return true
	}
	if unicode.IsLetter(r) {
		return false
	}
	return true
}

// telexDouble maps the (lowercase) base letter that, doubled, forms a
// diacritic: aa -> â, ee -> ê, oo -> ô, dd -> đ.
var telexDouble = map[rune]VowelMark{
	'a': VowelHat,
	'e': VowelHat,
	'o': VowelHat,
	'd': VowelDBar,
}

// telexW maps the (lowercase) base letter 'w' can combine with:
// aw -> ă, ow -> ơ, uw -> ư.
var telexW = map[rune]VowelMark{
	'a': VowelBreve,
	'o': VowelHorn,
	'u': VowelHorn,
}

// Apply evaluates the Telex op pipeline against a single incoming key.
// Callers are expected to have already handled: raw-mode syllables,
// the soiled gate, and the lone-leading-w shortcut (applied before the
// first Apply call of a syllable). It returns true if a transform (as
// opposed to a plain literal append) was applied. A cancel-by-repeat
// reports false: it leaves the key as a literal letter, which is not
// re-validated.
func (t *Telex) Apply(buf *Buffer, r rune, cfg *Config) bool {
	lower := unicode.ToLower(r)
	upper := unicode.IsUpper(r)

	// Step 2: tone keys.
	if tone, ok := t.IsToneKey(lower); ok {
		cells := buf.Cells()
		_, nucleusEnd := split(cells)
		if nucleusEnd > 0 {
			if curKey, has := ToneKeyOf(cells); has && curKey == lower {
				// Cancel-by-repeat: remove the tone, keep the key literal.
				ClearTone(cells)
				buf.Append(Cell{Base: lower, Upper: upper, Class: classify(lower)})
				buf.PushRawKey(r)
				return false
			}
			pos := findTonePosition(cells, cfg.Modern)
			ClearTone(cells)
			c := buf.Cell(pos)
			c.Tone = tone
			c.ToneKey = lower
			buf.Set(pos, c)
			buf.PushRawKey(r)
			return true
		}
	}

	// Step 3: digraph vowel marks (aa/ee/oo/dd) and horn/breve combiner (w).
	if last := buf.Last(); last != nil {
		if lower == 'w' {
			if mark, ok := telexW[last.Base]; ok {
				if last.Mark == mark && last.MarkKey == 'w' {
					// Cancel-by-repeat on the single-keystroke combiner.
					last.Mark = VowelNone
					last.MarkKey = 0
					buf.Append(Cell{Base: lower, Upper: upper, Class: classify(lower)})
					buf.PushRawKey(r)
					return false
				}
				last.Mark = mark
				last.MarkKey = 'w'
				buf.PushRawKey(r)
				return true
			}
		} else if mark, ok := telexDouble[lower]; ok && last.Base == lower && last.Class != ClassOther {
			if last.Mark == mark && last.MarkKey == lower {
				// Cancel-by-repeat: unmerge the doubled pair, then append
				// this key literally (spec.md §4.3: "keep k as a literal
				// letter"), e.g. "aa" + "a" -> "a","a","a".
				last.Mark = VowelNone
				last.MarkKey = 0
				buf.Append(Cell{Base: lower, Upper: last.Upper, Class: classify(lower)})
				buf.Append(Cell{Base: lower, Upper: upper, Class: classify(lower)})
				buf.PushRawKey(r)
				return false
			}
			last.Mark = mark
			last.MarkKey = lower
			last.Doubled = true
			buf.PushRawKey(r)
			return true
		}
	}

	// Step 4: literal letter.
	buf.Append(Cell{Base: lower, Upper: upper, Class: classify(lower)})
	buf.PushRawKey(r)
	return false
}
