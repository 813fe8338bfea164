package models

import "testing"

func TestNormalizeApplicationNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"10-2021-0012345", "1020210012345"},
		{"1020210012345", "1020210012345"},
		{"KR 10 2021 0012345 A", "1020210012345"},
		{"출원 10-2021-0012345호", "1020210012345"},
		{"", ""},
		{"no digits here", ""},
	}
	for _, c := range cases {
		if got := NormalizeApplicationNumber(c.in); got != c.want {
			t.Errorf("NormalizeApplicationNumber(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeApplicationNumberIdempotent(t *testing.T) {
	inputs := []string{"10-2021-0012345", "abc123def456", "", "2020/0001"}
	for _, in := range inputs {
		once := NormalizeApplicationNumber(in)
		twice := NormalizeApplicationNumber(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
