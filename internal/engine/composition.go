package engine

import "unicode"

// Composer drives the per-key transform pipeline (spec.md §4.7) for a
// single in-flight syllable: snapshot, ask the decoder for an op,
// validate, revert on failure, diff. It has no notion of word breaks,
// history, abbreviations, or capitalization; callers detect word
// breaks themselves via Decoder.IsWordBreak and handle commit.
type Composer struct {
	Buf     *Buffer
	Decoder Decoder
	Cfg     *Config
}

// NewComposer builds a Composer with a fresh buffer.
func NewComposer(d Decoder, cfg *Config) *Composer {
	return &Composer{Buf: &Buffer{}, Decoder: d, Cfg: cfg}
}

// KeyResult is the diff the façade turns into a Result (spec.md §6):
// delete Backspace characters, then type Chars.
type KeyResult struct {
	Backspace int
	Chars     []rune
}

// Key processes one printable, already case-resolved rune against the
// current syllable. Control keys (space, Enter, Backspace, ESC) are
// the façade's responsibility; it consults Decoder.IsWordBreak before
// routing here.
func (c *Composer) Key(r rune) KeyResult {
	before := c.Buf.Render(c.Cfg.Modern)

	if c.Buf.Len() >= MaxCells {
		// Bounded failure (spec.md §7): drop the overlong syllable and
		// start fresh with this key.
		c.Buf.Reset()
		c.appendLiteral(r)
		return c.diffFrom(before)
	}

	if c.Buf.Len() == 0 {
		if c.Decoder.IsRawPrefix(r) {
			c.Buf.Append(Cell{Base: r, Class: ClassOther})
			c.Buf.PushRawKey(r)
			c.Buf.MarkSoiled()
			return c.diffFrom(before)
		}
		if !c.Cfg.SkipWShortcut && unicode.ToLower(r) == 'w' {
			if _, isTelex := c.Decoder.(*Telex); isTelex {
				c.Buf.Append(Cell{Base: 'u', Upper: unicode.IsUpper(r), Mark: VowelHorn, MarkKey: 'w', Class: ClassVowel})
				c.Buf.PushRawKey(r)
				return c.diffFrom(before)
			}
		}
	}

	if c.Buf.Soiled() {
		c.appendLiteral(r)
		return c.diffFrom(before)
	}

	snap := c.Buf.Save()
	transformed := c.Decoder.Apply(c.Buf, r, c.Cfg)

	if transformed && c.Cfg.EnableValidation {
		if res := ValidateSyllablePrefix(c.Buf.Cells()); !res.Valid {
			c.Buf.Restore(snap)
			c.appendLiteral(r)
			c.Buf.MarkSoiled()
		}
	}

	if c.Buf.Overflowed() {
		c.Buf.Restore(snap)
		c.Buf.Reset()
		c.appendLiteral(r)
	}

	return c.diffFrom(before)
}

func (c *Composer) appendLiteral(r rune) {
	lower := unicode.ToLower(r)
	c.Buf.Append(Cell{Base: lower, Upper: unicode.IsUpper(r), Class: classify(lower)})
	c.Buf.PushRawKey(r)
}

func (c *Composer) diffFrom(before []rune) KeyResult {
	after := c.Buf.Render(c.Cfg.Modern)
	bs, tail := Diff(before, after)
	return KeyResult{Backspace: bs, Chars: tail}
}

// IsWordBreak reports whether r ends the syllable under the active
// decoder.
func (c *Composer) IsWordBreak(r rune) bool { return c.Decoder.IsWordBreak(r) }

// Commit returns the raw keys and rendered text of the current
// syllable and resets the buffer for the next one (spec.md §4.7's
// "push current buffer to word history... then Empty").
func (c *Composer) Commit() (rawKeys []rune, rendered []rune) {
	rawKeys = append([]rune(nil), c.Buf.RawKeys()...)
	rendered = c.Buf.Render(c.Cfg.Modern)
	c.Buf.Reset()
	return rawKeys, rendered
}

// ClearSyllable drops the in-flight syllable without committing it.
func (c *Composer) ClearSyllable() { c.Buf.Reset() }

// Backspace undoes the last keystroke of the in-flight syllable by
// replaying every raw key but the last ("as" -> "a"). A buffer with no
// raw keys drops its last cell instead. It reports false if the buffer
// is already empty — the façade then falls back to spec.md §4.11's
// cross-word-break path, since a bare Backspace has no view of text
// the shell has already committed.
func (c *Composer) Backspace() (KeyResult, bool) {
	if c.Buf.Len() == 0 {
		return KeyResult{}, false
	}
	before := c.Buf.Render(c.Cfg.Modern)
	raw := c.Buf.RawKeys()
	if len(raw) == 0 {
		c.Buf.Truncate(c.Buf.Len() - 1)
		return c.diffFrom(before), true
	}
	keep := append([]rune(nil), raw[:len(raw)-1]...)
	c.Buf.Reset()
	for _, r := range keep {
		c.Key(r)
	}
	return c.diffFrom(before), true
}

// RestoreWord decomposes word back into Cells under the active
// decoder and re-seeds the buffer with them (spec.md §4.1's
// restore_word, §4.11's backspace-across-word-break case). The raw
// keys are synthesized from the cells: each letter followed by its
// mark key, with the tone key appended last.
func (c *Composer) RestoreWord(word []rune) {
	c.Buf.LoadCells(Decompose(word, c.Decoder))
	var toneKey rune
	for _, cl := range c.Buf.Cells() {
		c.Buf.PushRawKey(cl.Rune())
		if cl.MarkKey != 0 {
			c.Buf.PushRawKey(cl.MarkKey)
		}
		if cl.ToneKey != 0 {
			toneKey = cl.ToneKey
		}
	}
	if toneKey != 0 {
		c.Buf.PushRawKey(toneKey)
	}
}

// EscRestore implements the non-history half of ESC (spec.md §4.11):
// if the buffer holds a syllable, replace its render with its raw
// keys rendered literally and clear it, reporting true. If the buffer
// is already empty there is nothing to restore here; the façade falls
// back to word history.
func (c *Composer) EscRestore() (KeyResult, bool) {
	if c.Buf.Len() == 0 {
		return KeyResult{}, false
	}
	before := c.Buf.Render(c.Cfg.Modern)
	raw := c.Buf.RawKeys()
	after := make([]rune, len(raw))
	copy(after, raw)
	c.Buf.Reset()
	bs, tail := Diff(before, after)
	return KeyResult{Backspace: bs, Chars: tail}, true
}

// reverseToneTab maps a toned (and possibly vowel-marked) rune back to
// its unmarked-of-tone base and tone, e.g. 'ố' -> ('ô', ToneSac).
var reverseToneTab = func() map[rune]struct {
	base rune
	tone ToneMark
} {
	m := make(map[rune]struct {
		base rune
		tone ToneMark
	})
	for base, variants := range vowelTones {
		for tone, r := range variants {
			m[r] = struct {
				base rune
				tone ToneMark
			}{base, tone}
		}
	}
	return m
}()

// reverseMarkTab maps a vowel-marked letter back to its plain base and
// mark, e.g. 'ô' -> ('o', VowelHat).
var reverseMarkTab = func() map[rune]struct {
	base rune
	mark VowelMark
} {
	m := make(map[rune]struct {
		base rune
		mark VowelMark
	})
	for base, variants := range vowelMarks {
		for mark, r := range variants {
			m[r] = struct {
				base rune
				mark VowelMark
			}{base, mark}
		}
	}
	return m
}()

// toneKeyFor returns the key the given decoder would use to set tone.
func toneKeyFor(d Decoder, tone ToneMark) rune {
	switch d.(type) {
	case *VNI:
		switch tone {
		case ToneSac:
			return '1'
		case ToneHuyen:
			return '2'
		case ToneHoi:
			return '3'
		case ToneNga:
			return '4'
		case ToneNang:
			return '5'
		}
	default:
		switch tone {
		case ToneSac:
			return 's'
		case ToneHuyen:
			return 'f'
		case ToneHoi:
			return 'r'
		case ToneNga:
			return 'x'
		case ToneNang:
			return 'j'
		}
	}
	return 0
}

// markKeyFor returns the key and Doubled flag the given decoder would
// use to set the given vowel/stroke mark on base.
func markKeyFor(d Decoder, base rune, mark VowelMark) (key rune, doubled bool) {
	if _, isVNI := d.(*VNI); isVNI {
		switch mark {
		case VowelHat:
			return '6', false
		case VowelHorn:
			return '7', false
		case VowelBreve:
			return '8', false
		case VowelDBar:
			return '9', false
		}
		return 0, false
	}
	switch mark {
	case VowelHat, VowelDBar:
		return base, true
	case VowelHorn, VowelBreve:
		return 'w', false
	}
	return 0, false
}

// Decompose reconstructs cell-level structure from an already-rendered
// word, guessing each cell's origin key under decoder d so the
// resulting buffer still accepts cancel-by-repeat edits. Used by
// restore_word (spec.md §4.11) to re-seed the buffer from committed
// text the shell is showing.
func Decompose(word []rune, d Decoder) []Cell {
	cells := make([]Cell, 0, len(word))
	for _, r := range word {
		upper := unicode.IsUpper(r)
		lower := unicode.ToLower(r)

		if lower == 'đ' {
			key, doubled := markKeyFor(d, 'd', VowelDBar)
			cells = append(cells, Cell{
				Base: 'd', Upper: upper, Mark: VowelDBar, MarkKey: key,
				Doubled: doubled, Class: ClassConsonant,
			})
			continue
		}

		base, tone := lower, ToneNone
		if bt, ok := reverseToneTab[lower]; ok {
			base, tone = bt.base, bt.tone
		}

		plain, mark := base, VowelNone
		if bm, ok := reverseMarkTab[base]; ok {
			plain, mark = bm.base, bm.mark
		}

		c := Cell{Base: plain, Upper: upper, Tone: tone, Mark: mark, Class: classify(plain)}
		if tone != ToneNone {
			c.ToneKey = toneKeyFor(d, tone)
		}
		if mark != VowelNone {
			c.MarkKey, c.Doubled = markKeyFor(d, plain, mark)
		}
		cells = append(cells, c)
	}
	return cells
}
