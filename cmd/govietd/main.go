// Command govietd is the D-Bus shell that drives the session façade
// (package ime at the module root): it registers a session-bus object
// a frontend (e.g. an Fcitx5 addon) calls into for every key event, and
// loads the TOML config spec.md §6 says is the shell's responsibility
// to persist.
//
// Grounded on me4hit-goviet-ime/backend/cmd/daemon/main.go: the
// session-bus connection, RequestName call, log-to-file setup, startup
// banner, and signal-based shutdown are kept almost verbatim. Extended
// with a TOML-loaded config (miken90-fkey's config package) applied to
// the façade's setters at startup, and new D-Bus methods exposing the
// setters and abbreviation API the teacher's object never had.
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"unicode"

	"github.com/godbus/dbus/v5"

	ime "github.com/vnkey/govietd"
	"github.com/vnkey/govietd/internal/config"
)

const (
	serviceName = "com.github.vnkey.govietd"
	objectPath  = "/Engine"
)

// X11 modifier bits, matching the shell's ProcessKey contract.
const (
	modShift   uint32 = 1 << 0
	modLock    uint32 = 1 << 1
	modControl uint32 = 1 << 2
)

// InputEngine is the D-Bus object a frontend drives one key at a time.
type InputEngine struct {
	sess   *ime.Session
	pre    []rune
	logger *log.Logger
}

// NewInputEngine constructs an InputEngine with cfg already applied.
func NewInputEngine(cfg *config.Config, logger *log.Logger) *InputEngine {
	sess := ime.New()
	sess.SetEnabled(cfg.Enabled)
	if cfg.Method == 1 {
		sess.SetMethod(ime.MethodVNI)
	}
	sess.SetModernTone(cfg.ModernTone)
	sess.SetSkipWShortcut(cfg.SkipWShortcut)
	sess.SetEscRestore(cfg.EscRestore)
	sess.SetEnglishAutoRestore(cfg.EnglishAutoRestore)
	sess.SetAutoCapitalize(cfg.AutoCapitalize)
	for trigger, repl := range cfg.Abbreviations {
		sess.AddAbbreviation(trigger, repl)
	}
	return &InputEngine{sess: sess, logger: logger}
}

// keysymToKey resolves an X11 keysym plus Shift state to the
// host-neutral (keyCode, shift) pair Session.Key expects: the ASCII
// codepoint of the unshifted, lowercase key (spec.md §4.1). Letters
// fall through the printable ASCII range of the keysym space
// unchanged; a shifted letter keysym is the uppercase codepoint, so it
// is lowered here and reported as shifted regardless of the modifier
// word, matching real X11 behavior.
func keysymToKey(keysym uint32, modifiers uint32) (code uint16, shift bool, ok bool) {
	if keysym > 0xffff {
		return 0, false, false
	}
	r := rune(keysym)
	if r >= 'A' && r <= 'Z' {
		return uint16(unicode.ToLower(r)), true, true
	}
	return uint16(keysym), modifiers&modShift != 0, true
}

// ProcessKey handles one key event from the frontend.
// Returns: handled (swallow the key), commitText (flush to the text
// field and clear preedit), preeditText (current composition).
func (e *InputEngine) ProcessKey(keysym uint32, modifiers uint32) (bool, string, string, *dbus.Error) {
	code, shift, ok := keysymToKey(keysym, modifiers)
	if !ok {
		return false, "", string(e.pre), nil
	}
	caps := modifiers&modLock != 0
	ctrl := modifiers&modControl != 0

	result := e.sess.Key(code, caps, ctrl, shift)

	if e.logger != nil {
		e.logger.Printf("keysym=0x%x mods=0x%x action=%v backspace=%d chars=%q consumed=%v",
			keysym, modifiers, result.Action, result.Backspace, string(result.Chars), result.KeyConsumed)
	}

	if result.Action == ime.ActionNone {
		return result.KeyConsumed, "", string(e.pre), nil
	}

	bs := result.Backspace
	if bs > len(e.pre) {
		bs = len(e.pre)
	}
	e.pre = append(append([]rune(nil), e.pre[:len(e.pre)-bs]...), result.Chars...)

	commit := ""
	if len(e.sess.GetBuffer()) == 0 {
		commit = string(e.pre)
		e.pre = nil
	}
	return true, commit, string(e.pre), nil
}

// Reset clears the in-flight syllable and word history.
func (e *InputEngine) Reset() *dbus.Error {
	e.sess.ClearAll()
	e.pre = nil
	return nil
}

// SetEnabled enables or disables the engine.
func (e *InputEngine) SetEnabled(enabled bool) *dbus.Error {
	e.sess.SetEnabled(enabled)
	return nil
}

// SetMethod switches the active input convention (0=Telex, 1=VNI).
func (e *InputEngine) SetMethod(method byte) *dbus.Error {
	if method == 1 {
		e.sess.SetMethod(ime.MethodVNI)
	} else {
		e.sess.SetMethod(ime.MethodTelex)
	}
	return nil
}

// SetModernTone toggles modern vs classical tone placement.
func (e *InputEngine) SetModernTone(v bool) *dbus.Error {
	e.sess.SetModernTone(v)
	return nil
}

// SetSkipWShortcut toggles the lone-leading-w shortcut.
func (e *InputEngine) SetSkipWShortcut(v bool) *dbus.Error {
	e.sess.SetSkipWShortcut(v)
	return nil
}

// SetEscRestore toggles ESC-triggered restore.
func (e *InputEngine) SetEscRestore(v bool) *dbus.Error {
	e.sess.SetEscRestore(v)
	return nil
}

// SetEnglishAutoRestore toggles the English-like heuristic restore.
func (e *InputEngine) SetEnglishAutoRestore(v bool) *dbus.Error {
	e.sess.SetEnglishAutoRestore(v)
	return nil
}

// SetAutoCapitalize toggles sentence-start auto-capitalization.
func (e *InputEngine) SetAutoCapitalize(v bool) *dbus.Error {
	e.sess.SetAutoCapitalize(v)
	return nil
}

// AddShortcut registers a trigger -> replacement abbreviation.
func (e *InputEngine) AddShortcut(trigger, replacement string) *dbus.Error {
	e.sess.AddAbbreviation(trigger, replacement)
	return nil
}

// RemoveShortcut deletes a registered abbreviation trigger.
func (e *InputEngine) RemoveShortcut(trigger string) *dbus.Error {
	e.sess.RemoveAbbreviation(trigger)
	return nil
}

// ClearShortcuts removes every registered abbreviation.
func (e *InputEngine) ClearShortcuts() *dbus.Error {
	e.sess.ClearAbbreviations()
	return nil
}

// GetPreedit returns the current preedit string.
func (e *InputEngine) GetPreedit() (string, *dbus.Error) {
	return string(e.pre), nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		cfg = config.Default()
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to connect to session bus:", err)
		os.Exit(1)
	}
	defer conn.Close()

	reply, err := conn.RequestName(serviceName, dbus.NameFlagDoNotQueue)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to request name:", err)
		os.Exit(1)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		fmt.Fprintln(os.Stderr, "Name already taken - another instance may be running")
		os.Exit(1)
	}

	logFile, err := os.OpenFile("govietd.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	var logger *log.Logger
	if err == nil {
		logger = log.New(logFile, "", log.LstdFlags)
		fmt.Println(">>> [govietd] Logging to govietd.log")
	} else {
		fmt.Fprintf(os.Stderr, ">>> [govietd] Failed to open log file: %v\n", err)
	}
	defer logFile.Close()

	inputEngine := NewInputEngine(cfg, logger)

	if err := conn.Export(inputEngine, dbus.ObjectPath(objectPath), serviceName); err != nil {
		fmt.Fprintln(os.Stderr, "Failed to export object:", err)
		os.Exit(1)
	}

	fmt.Println("================================================")
	fmt.Println("govietd is running")
	fmt.Println("================================================")
	fmt.Printf("  Service:      %s\n", serviceName)
	fmt.Printf("  Object Path:  %s\n", objectPath)
	if cfg.Method == 1 {
		fmt.Println("  Input Method: VNI")
	} else {
		fmt.Println("  Input Method: Telex")
	}
	fmt.Println("  Output Format: Unicode")
	fmt.Println("------------------------------------------------")
	fmt.Println("Waiting for key events...")
	fmt.Println()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	fmt.Println("\n>>> [govietd] Shutting down...")
}
