package abbrev

import "testing"

func TestAbbrevAddLookup(t *testing.T) {
	tbl := New()
	if _, ok := tbl.Lookup("tphcm"); ok {
		t.Fatalf("Lookup() on empty table ok = true")
	}
	tbl.Add("tphcm", "Thành phố Hồ Chí Minh")
	got, ok := tbl.Lookup("tphcm")
	if !ok {
		t.Fatalf("Lookup() ok = false after Add")
	}
	if got != "Thành phố Hồ Chí Minh" {
		t.Errorf("Lookup() = %q, want %q", got, "Thành phố Hồ Chí Minh")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestAbbrevOverwrite(t *testing.T) {
	tbl := New()
	tbl.Add("vn", "Việt Nam")
	tbl.Add("vn", "Vietnam")
	got, _ := tbl.Lookup("vn")
	if got != "Vietnam" {
		t.Errorf("Lookup() after overwrite = %q, want %q", got, "Vietnam")
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() after overwrite = %d, want 1", tbl.Len())
	}
}

func TestAbbrevRemove(t *testing.T) {
	tbl := New()
	tbl.Add("vn", "Việt Nam")
	tbl.Remove("vn")
	if _, ok := tbl.Lookup("vn"); ok {
		t.Errorf("Lookup() after Remove ok = true")
	}
	tbl.Remove("missing") // no-op, must not panic
}

func TestAbbrevClear(t *testing.T) {
	tbl := New()
	tbl.Add("vn", "Việt Nam")
	tbl.Add("hn", "Hà Nội")
	tbl.Clear()
	if tbl.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", tbl.Len())
	}
}
