package engine

import "unicode"

// MaxCells is the composition buffer's capacity (spec.md §3: "Bounded
// (≤63 cells, enforced)"). The cell array holds exactly MaxCells
// slots; Append refuses a 64th cell and sets the overflow flag.
const MaxCells = 63

// Cell is one composed character position: a base letter plus the
// tone/vowel marks currently applied to it, and the origin key that
// introduced each mark so a repeated key press can cancel it instead
// of reapplying it.
type Cell struct {
	Base  rune // canonical lowercase base letter, or literal ASCII punctuation/digit
	Upper bool
	Tone  ToneMark
	Mark  VowelMark
	Class CellClass

	ToneKey rune // key that set Tone; 0 if Tone == ToneNone
	MarkKey rune // key that set Mark; 0 if Mark == VowelNone

	// Doubled records that Mark was formed by pressing the cell's own
	// base letter a second time (aa, ee, oo, dd) rather than by a
	// distinct combiner key (w). Cancel-by-repeat needs this to know
	// whether unmerging should reconstruct a second origin cell.
	Doubled bool
}

// Rune renders the cell's base letter with its current case, ignoring
// tone and vowel mark (used for raw/ESC restore).
func (c Cell) Rune() rune {
	if c.Upper {
		return unicode.ToUpper(c.Base)
	}
	return c.Base
}

// Buffer is the ordered, fixed-capacity sequence of Cells representing
// the current, unsubmitted syllable.
type Buffer struct {
	cells    [MaxCells]Cell
	n        int
	soiled   bool
	rawKeys  []rune // the literal keys typed so far, for ESC restore and abbreviation matching
	overflow bool
}

// Len returns the number of cells currently in the buffer.
func (b *Buffer) Len() int { return b.n }

// Cells returns the live cell slice. Callers must not retain it past
// the next mutating call.
func (b *Buffer) Cells() []Cell { return b.cells[:b.n] }

// Cell returns a copy of the cell at i.
func (b *Buffer) Cell(i int) Cell { return b.cells[i] }

// Set overwrites the cell at i.
func (b *Buffer) Set(i int, c Cell) { b.cells[i] = c }

// Last returns a pointer to the most recently appended cell, or nil if
// the buffer is empty.
func (b *Buffer) Last() *Cell {
	if b.n == 0 {
		return nil
	}
	return &b.cells[b.n-1]
}

// Append pushes a new cell. It returns false (and sets the overflow
// flag) if the buffer is already at capacity; callers must treat that
// as the "Bounded" failure of spec.md §7 and clear the buffer.
func (b *Buffer) Append(c Cell) bool {
	if b.n >= MaxCells {
		b.overflow = true
		return false
	}
	b.cells[b.n] = c
	b.n++
	return true
}

// Truncate drops the tail so only the first n cells remain.
func (b *Buffer) Truncate(n int) {
	if n < 0 {
		n = 0
	}
	if n > b.n {
		return
	}
	b.n = n
}

// RawKeys returns the literal keys typed to produce the current
// buffer contents, in order.
func (b *Buffer) RawKeys() []rune { return b.rawKeys }

// PushRawKey records a literal key press.
func (b *Buffer) PushRawKey(r rune) { b.rawKeys = append(b.rawKeys, r) }

// PopRawKey removes the most recent literal key press, if any.
func (b *Buffer) PopRawKey() {
	if len(b.rawKeys) > 0 {
		b.rawKeys = b.rawKeys[:len(b.rawKeys)-1]
	}
}

// Soiled reports whether the current syllable has had a transform
// reverted and is no longer eligible for further Telex/VNI transforms
// until the next word break.
func (b *Buffer) Soiled() bool { return b.soiled }

// MarkSoiled flags the current syllable as soiled.
func (b *Buffer) MarkSoiled() { b.soiled = true }

// Overflowed reports whether the last Append failed due to capacity.
func (b *Buffer) Overflowed() bool { return b.overflow }

// LoadCells re-seeds the buffer from externally reconstructed cells
// (used by restore_word, spec.md §4.11). Cells beyond MaxCells are
// dropped rather than overflowing.
func (b *Buffer) LoadCells(cells []Cell) {
	b.n = 0
	b.soiled = false
	b.rawKeys = b.rawKeys[:0]
	b.overflow = false
	for _, c := range cells {
		if !b.Append(c) {
			break
		}
	}
}

// Reset clears the buffer back to empty.
func (b *Buffer) Reset() {
	b.n = 0
	b.soiled = false
	b.rawKeys = b.rawKeys[:0]
	b.overflow = false
}

// Snapshot captures enough state to restore the buffer after a
// reverted transform.
type Snapshot struct {
	cells   [MaxCells]Cell
	n       int
	soiled  bool
	rawKeys []rune
}

// Save captures the buffer's current state.
func (b *Buffer) Save() Snapshot {
	s := Snapshot{cells: b.cells, n: b.n, soiled: b.soiled}
	s.rawKeys = append([]rune(nil), b.rawKeys...)
	return s
}

// Restore reverts the buffer to a previously saved snapshot.
func (b *Buffer) Restore(s Snapshot) {
	b.cells = s.cells
	b.n = s.n
	b.soiled = s.soiled
	b.rawKeys = append(b.rawKeys[:0], s.rawKeys...)
}

// Render materializes the buffer to its precomposed Unicode scalars,
// placing the tone mark on the cell the tone placer selects.
func (b *Buffer) Render(modern bool) []rune {
	cells := b.cells[:b.n]
	tonePos := findTonePosition(cells, modern)

	out := make([]rune, 0, b.n)
	for i, c := range cells {
		r := applyVowelMark(c.Base, c.Mark)
		tone := ToneNone
		if i == tonePos {
			tone = toneOf(cells)
		}
		r = applyTone(r, tone)
		if c.Upper {
			r = unicode.ToUpper(r)
		}
		out = append(out, r)
	}
	return out
}

// toneOf returns the single tone mark carried anywhere in the buffer
// (spec.md §3 invariant: at most one tone mark in the buffer).
func toneOf(cells []Cell) ToneMark {
	for _, c := range cells {
		if c.Tone != ToneNone {
			return c.Tone
		}
	}
	return ToneNone
}

// ToneKeyOf returns the origin key of the buffer's tone, if any.
func ToneKeyOf(cells []Cell) (rune, bool) {
	for _, c := range cells {
		if c.Tone != ToneNone {
			return c.ToneKey, true
		}
	}
	return 0, false
}

// ClearTone removes the tone mark from whichever cell currently holds
// it, used when a decoder moves the tone to a different vowel.
func ClearTone(cells []Cell) {
	for i := range cells {
		cells[i].Tone = ToneNone
		cells[i].ToneKey = 0
	}
}

// Diff computes a minimal suffix replacement between two renders: the
// shared longest common prefix is left alone, the remaining suffix of
// old is backspaced, and the remaining suffix of new is typed
// (spec.md §4.2).
func Diff(old, new []rune) (backspace int, tail []rune) {
	n := len(old)
	if len(new) < n {
		n = len(new)
	}
	shared := 0
	for shared < n && old[shared] == new[shared] {
		shared++
	}
	backspace = len(old) - shared
	tail = append([]rune(nil), new[shared:]...)
	return backspace, tail
}
