// Package engine implements the Vietnamese composition core: the
// bounded cell buffer, the Telex/VNI decoders, the syllable validator,
// and the tone placer. It has no knowledge of word history,
// abbreviations, English auto-restore, or auto-capitalize — those live
// one level up, in the session façade, because they act on committed
// words rather than the in-flight syllable.
package engine

// KeyCode is a host-neutral key identifier. For printable keys it is
// the ASCII codepoint of the unshifted, lowercase key; special keys
// reuse the low range of X11 keysyms, which already fit in 16 bits for
// every key this engine cares about.
type KeyCode uint16

// Special key codes the engine treats distinctly from printable runes.
const (
	KeyBackspace KeyCode = 0xff08
	KeyReturn    KeyCode = 0xff0d
	KeyEscape    KeyCode = 0xff1b
	KeySpace     KeyCode = 0x0020
	KeyTab       KeyCode = 0xff09
	KeyDelete    KeyCode = 0xffff
)

// ToneMark identifies one of the six Vietnamese tonal categories.
type ToneMark int

const (
	ToneNone  ToneMark = iota // thanh ngang (level, unmarked)
	ToneSac                   // sắc (acute): á
	ToneHuyen                 // huyền (grave): à
	ToneHoi                   // hỏi (hook above): ả
	ToneNga                   // ngã (tilde): ã
	ToneNang                  // nặng (dot below): ạ
)

// VowelMark identifies a diacritic applied to a base letter. Despite
// the name it also covers the đ stroke, which modifies a consonant.
type VowelMark int

const (
	VowelNone  VowelMark = iota
	VowelHat             // circumflex: â, ê, ô
	VowelBreve           // breve: ă
	VowelHorn            // horn: ơ, ư
	VowelDBar            // stroke: đ
)

// CellClass classifies a Cell's base letter for syllable parsing.
type CellClass int

const (
	ClassOther CellClass = iota
	ClassVowel
	ClassConsonant
)

// Decoder maps keystrokes plus current buffer state to buffer
// mutations. Telex and VNI each implement it; the engine selects one
// at runtime per the session configuration.
type Decoder interface {
	Name() string

	// IsToneKey reports whether r is this method's tone modifier for
	// the given tone category (acute/grave/hook/tilde/dot-below).
	IsToneKey(r rune) (ToneMark, bool)

	// IsRawPrefix reports whether r, seen as the first key of a
	// syllable, disables all transforms for that syllable.
	IsRawPrefix(r rune) bool

	// IsWordBreak reports whether a printable rune ends the current
	// syllable (space/punctuation for both methods; digits for Telex,
	// where they carry no modifier meaning, but not for VNI, where
	// 1-9 are tone/mark keys).
	IsWordBreak(r rune) bool

	// Apply evaluates the decoder's op pipeline (spec.md §4.3/§4.4)
	// against buf for the incoming key r (already case/caps resolved)
	// and mutates buf in place. It reports whether the buffer changed
	// in a way that must be re-validated.
	Apply(buf *Buffer, r rune, cfg *Config) bool
}
