package engine

import "testing"

func TestVNIName(t *testing.T) {
	if (&VNI{}).Name() != "VNI" {
		t.Errorf("Name() = %q, want %q", (&VNI{}).Name(), "VNI")
	}
}

func TestVNIToneDigits(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		keys string
		want string
	}{
		{"a1", "á"},
		{"a2", "à"},
		{"a3", "ả"},
		{"a4", "ã"},
		{"a5", "ạ"},
		{"an1", "án"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			got := compose(NewVNI(), cfg, tt.keys)
			if got != tt.want {
				t.Errorf("compose(%q) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestVNIVowelMarkDigits(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableValidation = false // isolate the mark mapping from the validator
	tests := []struct {
		keys string
		want string
	}{
		{"a6", "â"},
		{"e6", "ê"},
		{"o6", "ô"},
		{"o7", "ơ"},
		{"u7", "ư"},
		{"a8", "ă"},
		{"d9", "đ"},
	}
	for _, tt := range tests {
		t.Run(tt.keys, func(t *testing.T) {
			got := compose(NewVNI(), cfg, tt.keys)
			if got != tt.want {
				t.Errorf("compose(%q) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestVNIWords(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		keys string
		want string
	}{
		// spec.md §8 scenario #4: quyền
		{"quye6n2 -> quyền", "quye6n2", "quyền"},
		{"viet -> việt", "vie65t", "việt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := compose(NewVNI(), cfg, tt.keys)
			if got != tt.want {
				t.Errorf("compose(%q) = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestVNICancelByRepeatTone(t *testing.T) {
	cfg := DefaultConfig()
	c := NewComposer(NewVNI(), cfg)
	c.Key('a')
	c.Key('1')
	if got := string(c.Buf.Render(true)); got != "á" {
		t.Fatalf("after 'a1' = %q, want %q", got, "á")
	}
	c.Key('1')
	if got := string(c.Buf.Render(true)); got != "a1" {
		t.Errorf("after tone cancel-by-repeat = %q, want %q", got, "a1")
	}
}

func TestVNIIsWordBreak(t *testing.T) {
	v := NewVNI()
	tests := []struct {
		r    rune
		want bool
	}{
		{' ', true},
		{'.', true},
		{'1', false}, // VNI spends digits as tone/mark keys
		{'9', false},
		{'a', false},
	}
	for _, tt := range tests {
		if got := v.IsWordBreak(tt.r); got != tt.want {
			t.Errorf("IsWordBreak(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
