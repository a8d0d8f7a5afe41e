package restore

import "testing"

func TestIsEnglishLike(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"text", true},
		{"expect", true},
		{"their", true},
		{"weird", true},
		{"pair", true},
		{"use", true},
		{"user", true},
		{"window", true},
		{"write", true},
		{"wow", true},
		{"file", true},
		{"firebase", true},
		// False negative documented by spec.md §4.9: "mix" parses as the
		// legal syllable "mĩ" and must not be restored.
		{"mix", false},
		{"ban", false},
		{"duoc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			if got := IsEnglishLike(tt.word); got != tt.want {
				t.Errorf("IsEnglishLike(%q) = %v, want %v", tt.word, got, tt.want)
			}
		})
	}
}

func TestIsEnglishLikeCaseInsensitive(t *testing.T) {
	if !IsEnglishLike("TEXT") {
		t.Errorf("IsEnglishLike(TEXT) = false, want true")
	}
}
