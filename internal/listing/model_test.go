package listing

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Riverside One", "riverside-one"},
		{"Skanste  Towers!", "skanste-towers"},
		{"Z-Towers (Phase 2)", "z-towers-phase-2"},
		{"--Edge--", "edge"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestValidStatus(t *testing.T) {
	if !ValidStatus("Available") {
		t.Error("Available should be valid")
	}
	if ValidStatus("Demolished") {
		t.Error("unknown status should be invalid")
	}
}

func TestValidPropertyType(t *testing.T) {
	if !ValidPropertyType("Co-working") {
		t.Error("Co-working should be valid")
	}
	if ValidPropertyType("Warehouse") {
		t.Error("unknown type should be invalid")
	}
}
