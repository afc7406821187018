package nameutil

import "testing"

func TestNormalizeKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Smith, John A.", "SMITH JOHN A"},
		{"  john   smith ", "JOHN SMITH"},
		{"O'Brien, Mary", "O'BRIEN MARY"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := NormalizeKey(tc.in); got != tc.want {
			t.Errorf("NormalizeKey(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSplit(t *testing.T) {
	cases := []struct {
		in          string
		first, last string
	}{
		{"John Smith", "John", "Smith"},
		{"John A. Smith", "John", "Smith"},
		{"Smith", "", "Smith"},
		{"  ", "", ""},
		{"Mary Beth van Dyke", "Mary", "Dyke"},
		{"Smith, John", "Smith", "John"},
	}
	for _, tc := range cases {
		first, last := Split(tc.in)
		if first != tc.first || last != tc.last {
			t.Errorf("Split(%q) = (%q, %q), want (%q, %q)", tc.in, first, last, tc.first, tc.last)
		}
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("JOHN", "SMITH"); got != "John Smith" {
		t.Errorf("DisplayName = %q, want %q", got, "John Smith")
	}
	if got := DisplayName("", "SMITH"); got != "Smith" {
		t.Errorf("DisplayName last only = %q, want %q", got, "Smith")
	}
	if got := DisplayName("", ""); got != "" {
		t.Errorf("DisplayName empty = %q, want empty", got)
	}
}
