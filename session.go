// Package ime is the session façade (spec.md §4.1): the narrow,
// mutex-guarded surface a host shell drives one key at a time. It
// wires the composition core (internal/engine) together with word
// history, abbreviation expansion, English auto-restore, and
// auto-capitalize — none of which the core itself knows about.
package ime

import (
	"sync"
	"unicode"

	"github.com/vnkey/govietd/internal/abbrev"
	"github.com/vnkey/govietd/internal/capitalize"
	"github.com/vnkey/govietd/internal/engine"
	"github.com/vnkey/govietd/internal/history"
	"github.com/vnkey/govietd/internal/restore"
)

// Method selects the active input convention.
type Method int

const (
	MethodTelex Method = iota
	MethodVNI
)

// Action mirrors the C ABI's Result.action (spec.md §6).
type Action int

const (
	ActionNone Action = iota
	ActionSend
)

// Result is the diff a host applies to its text field: delete
// Backspace characters immediately left of the cursor, then type
// Chars. KeyConsumed tells the host to swallow the originating key
// instead of letting it echo normally.
type Result struct {
	Action      Action
	Backspace   int
	Chars       []rune
	KeyConsumed bool
}

// Session is the single engine instance a host embeds. Every method
// takes the same mutex, matching spec.md §5's single-threaded
// cooperative scheduling model: key() is expected to run in tens of
// microseconds and never block.
type Session struct {
	mu sync.Mutex

	method   Method
	composer *engine.Composer
	cfg      *engine.Config

	enabled            bool
	escRestore         bool
	englishAutoRestore bool
	autoCapitalize     bool

	hist *history.History
	abbr *abbrev.Table
	caps capitalize.State
}

// New constructs a Session with the engine defaults: Telex, modern
// tone placement, W shortcut on, auto-restore/capitalize/esc-restore
// off.
func New() *Session {
	cfg := engine.DefaultConfig()
	return &Session{
		method:   MethodTelex,
		composer: engine.NewComposer(engine.NewTelex(), cfg),
		cfg:      cfg,
		enabled:  true,
		hist:     history.New(),
		abbr:     abbrev.New(),
	}
}

func decoderFor(m Method) engine.Decoder {
	if m == MethodVNI {
		return engine.NewVNI()
	}
	return engine.NewTelex()
}

// SetMethod switches the active input convention, discarding any
// in-flight syllable (switching method mid-syllable has no well
// defined render under the other convention's rules).
func (s *Session) SetMethod(m Method) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.method = m
	s.composer = engine.NewComposer(decoderFor(m), s.cfg)
}

// SetEnabled toggles the engine; while disabled every key passes
// through untouched (spec.md §7's "Ignored" category).
func (s *Session) SetEnabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.enabled = v
}

// SetModernTone toggles modern vs classical tone placement for
// no-coda diphthongs (spec.md §4.5).
func (s *Session) SetModernTone(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Modern = v
}

// SetSkipWShortcut disables the lone-leading-w -> ư Telex shortcut.
func (s *Session) SetSkipWShortcut(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.SkipWShortcut = v
}

// SetEscRestore toggles ESC-triggered restore (spec.md §4.11).
func (s *Session) SetEscRestore(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.escRestore = v
}

// SetEnglishAutoRestore toggles the English-like heuristic restore on
// word-break (spec.md §4.9).
func (s *Session) SetEnglishAutoRestore(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.englishAutoRestore = v
}

// SetAutoCapitalize toggles sentence-start auto-capitalization
// (spec.md §4.10).
func (s *Session) SetAutoCapitalize(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoCapitalize = v
	if !v {
		s.caps.Reset()
	}
}

// Clear drops the in-flight syllable, leaving history untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.ClearSyllable()
}

// ClearAll drops the in-flight syllable and the word history.
func (s *Session) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.ClearSyllable()
	s.hist.Clear()
	s.caps.Reset()
}

// GetBuffer returns the current syllable's rendered Unicode scalars.
func (s *Session) GetBuffer() []rune {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.Buf.Render(s.cfg.Modern)
}

// RestoreWord re-seeds the in-flight buffer by decomposing an
// already-committed word back into Cells (spec.md §4.1, §4.11).
func (s *Session) RestoreWord(word []rune) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.RestoreWord(word)
}

// AddAbbreviation registers a trigger -> replacement expansion
// (spec.md §4.8).
func (s *Session) AddAbbreviation(trigger, replacement string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abbr.Add(trigger, replacement)
}

// RemoveAbbreviation deletes a trigger, if registered.
func (s *Session) RemoveAbbreviation(trigger string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abbr.Remove(trigger)
}

// ClearAbbreviations removes every registered trigger.
func (s *Session) ClearAbbreviations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.abbr.Clear()
}

// Key is the hot path (spec.md §4.1): process one key event and
// return the diff the host must apply. keyCode is host-neutral per
// spec.md §6 — for printable keys it is the ASCII codepoint of the
// unshifted, lowercase key.
func (s *Session) Key(keyCode uint16, capsLock, ctrl, shift bool) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctrl || !s.enabled {
		return Result{Action: ActionNone}
	}

	kc := engine.KeyCode(keyCode)

	switch kc {
	case engine.KeyBackspace:
		return s.handleBackspace()
	case engine.KeyEscape:
		return s.handleEscape()
	case engine.KeyReturn:
		return s.handleBreak('\n')
	case engine.KeySpace:
		return s.handleBreak(' ')
	case engine.KeyTab, engine.KeyDelete:
		return Result{Action: ActionNone}
	}

	if kc < 0x20 || kc > 0x7e {
		return Result{Action: ActionNone}
	}
	r := rune(kc)

	// Raw-mode prefixes (spec.md §4.3) only apply at the start of a
	// syllable; elsewhere the same punctuation is an ordinary break.
	if s.composer.Buf.Len() == 0 && s.composer.Decoder.IsRawPrefix(r) {
		kr := s.composer.Key(r)
		return resultFrom(kr.Backspace, kr.Chars, false)
	}

	if s.composer.IsWordBreak(r) {
		return s.handleBreak(r)
	}

	if capsLock != shift {
		r = unicode.ToUpper(r)
	}
	if s.autoCapitalize && s.caps.Consume() {
		r = unicode.ToUpper(r)
	}

	kr := s.composer.Key(r)
	return resultFrom(kr.Backspace, kr.Chars, false)
}

// handleBreak commits the in-flight syllable, runs abbreviation
// expansion and English auto-restore against it, updates history and
// the capitalize state, and reports the diff needed to reconcile the
// just-committed word with its final form. The break key itself is
// never consumed (spec.md §4.7: "pass the break key through").
func (s *Session) handleBreak(breakKey rune) Result {
	raw, rendered := s.composer.Commit()
	if len(raw) == 0 {
		s.caps.ObserveCommit(breakKey)
		return Result{Action: ActionNone}
	}

	final := rendered
	if repl, ok := s.abbr.Lookup(string(raw)); ok {
		final = []rune(repl)
	} else if s.englishAutoRestore && restore.IsEnglishLike(string(raw)) {
		final = append([]rune(nil), raw...)
	}

	if s.autoCapitalize && s.caps.Consume() && len(final) > 0 {
		final = append([]rune(nil), final...)
		final[0] = unicode.ToUpper(final[0])
	}

	s.hist.Push(history.Word{
		RawKeys:  raw,
		Rendered: final,
		BreakKey: breakKey,
	})
	s.caps.ObserveCommit(breakKey)

	bs, tail := engine.Diff(rendered, final)
	return resultFrom(bs, tail, false)
}

// handleEscape implements spec.md §4.11's ESC behavior: restore the
// in-flight syllable to its raw keys, or — if nothing is in flight —
// pop and restore the most recently committed word from history.
func (s *Session) handleEscape() Result {
	if !s.escRestore {
		return Result{Action: ActionNone}
	}
	if kr, ok := s.composer.EscRestore(); ok {
		return resultFrom(kr.Backspace, kr.Chars, true)
	}
	w, ok := s.hist.Pop()
	if !ok {
		return Result{Action: ActionNone}
	}
	bs, tail := engine.Diff(w.Rendered, w.RawKeys)
	return resultFrom(bs, tail, true)
}

// handleBackspace deletes within the in-flight syllable. Once that
// buffer is empty, a Backspace has crossed a word boundary the engine
// never observed directly; the host is expected to detect that case
// itself and call RestoreWord with the word it sees left of the
// cursor (spec.md §4.11).
func (s *Session) handleBackspace() Result {
	if kr, ok := s.composer.Backspace(); ok {
		return resultFrom(kr.Backspace, kr.Chars, false)
	}
	return Result{Action: ActionNone}
}

func resultFrom(backspace int, chars []rune, consumed bool) Result {
	action := ActionNone
	if backspace > 0 || len(chars) > 0 {
		action = ActionSend
	}
	return Result{Action: action, Backspace: backspace, Chars: chars, KeyConsumed: consumed}
}
