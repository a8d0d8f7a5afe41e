package engine

import "testing"

func TestBufferAppendOverflow(t *testing.T) {
	var b Buffer
	for i := 0; i < MaxCells; i++ {
		if !b.Append(Cell{Base: 'a', Class: ClassVowel}) {
			t.Fatalf("append %d: unexpected overflow", i)
		}
	}
	if b.Append(Cell{Base: 'a', Class: ClassVowel}) {
		t.Fatalf("append past MaxCells should fail")
	}
	if !b.Overflowed() {
		t.Errorf("Overflowed() = false, want true")
	}
}

func TestBufferSaveRestore(t *testing.T) {
	var b Buffer
	b.Append(Cell{Base: 'a', Class: ClassVowel})
	b.PushRawKey('a')
	snap := b.Save()

	b.Append(Cell{Base: 'b', Class: ClassConsonant})
	b.PushRawKey('b')
	b.MarkSoiled()

	b.Restore(snap)
	if b.Len() != 1 {
		t.Fatalf("Len() after restore = %d, want 1", b.Len())
	}
	if b.Soiled() {
		t.Errorf("Soiled() after restore = true, want false")
	}
	if len(b.RawKeys()) != 1 {
		t.Errorf("RawKeys() after restore = %v, want 1 key", b.RawKeys())
	}
}

func TestDiff(t *testing.T) {
	tests := []struct {
		name      string
		old, new_ string
		backspace int
		tail      string
	}{
		{"identical", "hoa", "hoa", 0, ""},
		{"append", "ho", "hoa", 0, "a"},
		{"replace tail", "hoa", "hoà", 1, "à"},
		{"shrink", "hoan", "ho", 2, ""},
		{"empty to word", "", "an", 0, "an"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bs, tail := Diff([]rune(tt.old), []rune(tt.new_))
			if bs != tt.backspace || string(tail) != tt.tail {
				t.Errorf("Diff(%q, %q) = (%d, %q), want (%d, %q)",
					tt.old, tt.new_, bs, string(tail), tt.backspace, tt.tail)
			}
		})
	}
}

func TestBufferRenderSimple(t *testing.T) {
	var b Buffer
	b.Append(Cell{Base: 'h', Class: ClassConsonant})
	b.Append(Cell{Base: 'o', Class: ClassVowel})
	b.Append(Cell{Base: 'a', Tone: ToneHuyen, ToneKey: 'f', Class: ClassVowel})

	got := string(b.Render(true))
	if got != "hoà" {
		t.Errorf("Render() = %q, want %q", got, "hoà")
	}
}
