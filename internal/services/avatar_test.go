package services

import "testing"

func TestComputeInitials(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ada Lovelace", "AL"},
		{"ada", "A"},
		{"  jean claude van damme  ", "JD"},
		{"", "?"},
		{"   ", "?"},
	}
	for _, tc := range cases {
		if got := computeInitials(tc.name); got != tc.want {
			t.Fatalf("computeInitials(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestPickColor_Deterministic(t *testing.T) {
	a := pickColor("Orbit Labs")
	b := pickColor("orbit labs")
	if a != b {
		t.Fatalf("expected case-insensitive color choice, got %+v and %+v", a, b)
	}
	c := pickColor("Something Else Entirely")
	if a == c && pickColor("Another Name") == a {
		t.Fatalf("palette appears constant across distinct names")
	}
}
