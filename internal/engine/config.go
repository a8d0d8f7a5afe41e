package engine

// Config holds the engine-level knobs the session façade exposes
// (spec.md §3's method/modern_tone/skip_w_shortcut). The remaining
// session configuration — enabled, esc_restore, english_auto_restore,
// auto_capitalize, abbreviations — lives above this package, since the
// core engine has no concept of word history or committed text.
type Config struct {
	// Modern selects modern (true: oà, uỷ) vs classical (false: òa,
	// ủy) tone placement for no-coda diphthongs/triphthongs.
	Modern bool

	// SkipWShortcut disables the lone-leading-w -> ư shortcut when true.
	SkipWShortcut bool

	// EnableValidation gates every transform on ValidateSyllablePrefix
	// before committing it; disabling it is only useful for tests that
	// want to observe a decoder's raw output.
	EnableValidation bool
}

// DefaultConfig returns the engine defaults (modern tone rule, W
// shortcut on, validation on).
func DefaultConfig() *Config {
	return &Config{
		Modern:           true,
		SkipWShortcut:    false,
		EnableValidation: true,
	}
}
