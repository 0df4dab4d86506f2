package books

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		code     string
		wantName string
		wantDBS  string
		wantOK   bool
	}{
		{"GEN", "Genesis", "GN", true},
		{"gen", "Genesis", "GN", true},
		{" psa ", "Psalms", "PS", true},
		{"REV", "Revelation", "RE", true},
		{"XXX", "", "", false},
		{"", "", "", false},
	}

	for _, tt := range tests {
		b, ok := Resolve(tt.code)
		if ok != tt.wantOK {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.code, ok, tt.wantOK)
			continue
		}
		if !ok {
			continue
		}
		if b.Name != tt.wantName || b.DBS != tt.wantDBS {
			t.Errorf("Resolve(%q) = {%s %s}, want {%s %s}", tt.code, b.Name, b.DBS, tt.wantName, tt.wantDBS)
		}
	}
}

func TestCanonOrder(t *testing.T) {
	all := All()
	if len(all) != 66 {
		t.Fatalf("canon has %d books, want 66", len(all))
	}
	if all[0].Code != "GEN" || all[65].Code != "REV" {
		t.Errorf("canon bounds = %s..%s, want GEN..REV", all[0].Code, all[65].Code)
	}
	for i, b := range all {
		if b.Order != i+1 {
			t.Errorf("%s order = %d, want %d", b.Code, b.Order, i+1)
		}
	}

	mat, _ := Resolve("MAT")
	if mat.Order != 40 || mat.Testament != "NT" {
		t.Errorf("MAT = order %d testament %s, want 40 NT", mat.Order, mat.Testament)
	}
	mal, _ := Resolve("MAL")
	if mal.Testament != "OT" || mal.Order != 39 {
		t.Errorf("MAL = order %d testament %s, want 39 OT", mal.Order, mal.Testament)
	}
}

func TestDBSCodesUnique(t *testing.T) {
	seen := make(map[string]string)
	for _, b := range All() {
		if prev, dup := seen[b.DBS]; dup {
			t.Errorf("DBS code %s shared by %s and %s", b.DBS, prev, b.Code)
		}
		seen[b.DBS] = b.Code
	}
}
