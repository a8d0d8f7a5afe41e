// Package abi is the C ABI surface spec.md §6 describes: the engine's
// only external interface, loaded as a shared library by a per-platform
// keyboard-hook shell. It is built under the cabi tag only — the rest
// of the module, including every test in this repo, compiles and runs
// without cgo.
//
// Grounded on the consumer side of this same shape already present in
// the pack (miken90-fkey/platforms/linux/core/bridge.go's ImeResult and
// ime_key_ext/ime_free pair): this package is the producer the bridge
// expects on the other end of the FFI boundary, so the struct layout
// and function names mirror it exactly rather than being invented.
//
//go:build cabi

package abi

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
    uint32_t chars[64];
    uint8_t  action;
    uint8_t  backspace;
    uint8_t  count;
    uint8_t  flags;
} ImeResult;

static ImeResult *ime_result_alloc(void) {
    return (ImeResult *)calloc(1, sizeof(ImeResult));
}
*/
import "C"

import (
	"sync"
	"unicode/utf8"
	"unsafe"

	ime "github.com/vnkey/govietd"
)

// flagKeyConsumed is Result.flags bit 0 (spec.md §6).
const flagKeyConsumed = 1 << 0

const (
	actionNone = 0
	actionSend = 1
)

var (
	once sync.Once
	sess *ime.Session
)

// ensureInit makes every exported entry point safe to call even if the
// host skipped ime_init (spec.md §4.1: init is idempotent).
func ensureInit() {
	once.Do(func() {
		sess = ime.New()
	})
}

//export ime_init
func ime_init() {
	ensureInit()
}

//export ime_key_ext
func ime_key_ext(keyCode C.uint16_t, caps, ctrl, shift C.bool) *C.ImeResult {
	ensureInit()
	r := sess.Key(uint16(keyCode), bool(caps), bool(ctrl), bool(shift))
	return toCResult(r)
}

//export ime_free
func ime_free(p *C.ImeResult) {
	C.free(unsafe.Pointer(p))
}

func toCResult(r ime.Result) *C.ImeResult {
	out := C.ime_result_alloc()
	n := len(r.Chars)
	if n > 64 {
		n = 64
	}
	for i := 0; i < n; i++ {
		out.chars[i] = C.uint32_t(r.Chars[i])
	}
	out.count = C.uint8_t(n)
	bs := r.Backspace
	if bs > 255 {
		bs = 255
	}
	out.backspace = C.uint8_t(bs)
	if r.Action == ime.ActionSend {
		out.action = actionSend
	} else {
		out.action = actionNone
	}
	var flags C.uint8_t
	if r.KeyConsumed {
		flags |= flagKeyConsumed
	}
	out.flags = flags
	return out
}

//export ime_method
func ime_method(m C.uint8_t) {
	ensureInit()
	if m == 1 {
		sess.SetMethod(ime.MethodVNI)
	} else {
		sess.SetMethod(ime.MethodTelex)
	}
}

//export ime_enabled
func ime_enabled(v C.bool) {
	ensureInit()
	sess.SetEnabled(bool(v))
}

//export ime_modern
func ime_modern(v C.bool) {
	ensureInit()
	sess.SetModernTone(bool(v))
}

//export ime_skip_w_shortcut
func ime_skip_w_shortcut(v C.bool) {
	ensureInit()
	sess.SetSkipWShortcut(bool(v))
}

//export ime_esc_restore
func ime_esc_restore(v C.bool) {
	ensureInit()
	sess.SetEscRestore(bool(v))
}

//export ime_english_auto_restore
func ime_english_auto_restore(v C.bool) {
	ensureInit()
	sess.SetEnglishAutoRestore(bool(v))
}

//export ime_auto_capitalize
func ime_auto_capitalize(v C.bool) {
	ensureInit()
	sess.SetAutoCapitalize(bool(v))
}

//export ime_clear
func ime_clear() {
	ensureInit()
	sess.Clear()
}

//export ime_clear_all
func ime_clear_all() {
	ensureInit()
	sess.ClearAll()
}

//export ime_get_buffer
func ime_get_buffer(out *C.uint32_t, maxLen C.size_t) C.size_t {
	ensureInit()
	buf := sess.GetBuffer()
	n := len(buf)
	if n > int(maxLen) {
		n = int(maxLen)
	}
	if n == 0 || out == nil {
		return 0
	}
	dst := unsafe.Slice((*C.uint32_t)(unsafe.Pointer(out)), n)
	for i := 0; i < n; i++ {
		dst[i] = C.uint32_t(buf[i])
	}
	return C.size_t(n)
}

//export ime_restore_word
func ime_restore_word(word *C.char) {
	ensureInit()
	s, ok := goString(word)
	if !ok {
		return
	}
	sess.RestoreWord([]rune(s))
}

//export ime_add_shortcut
func ime_add_shortcut(trigger, replacement *C.char) {
	ensureInit()
	t, ok := goString(trigger)
	if !ok {
		return
	}
	r, ok := goString(replacement)
	if !ok {
		return
	}
	sess.AddAbbreviation(t, r)
}

//export ime_remove_shortcut
func ime_remove_shortcut(trigger *C.char) {
	ensureInit()
	t, ok := goString(trigger)
	if !ok {
		return
	}
	sess.RemoveAbbreviation(t)
}

//export ime_clear_shortcuts
func ime_clear_shortcuts() {
	ensureInit()
	sess.ClearAbbreviations()
}

// goString converts a NUL-terminated C string to a Go string, rejecting
// malformed UTF-8 per spec.md §4.1 ("Fails with Invalid only for...
// malformed UTF-8 in restore_word/abbreviation" — surfaced here as a
// silent no-op per §7's "invalid FFI inputs return neutral values").
func goString(p *C.char) (string, bool) {
	if p == nil {
		return "", false
	}
	s := C.GoString(p)
	if !utf8.ValidString(s) {
		return "", false
	}
	return s, true
}
