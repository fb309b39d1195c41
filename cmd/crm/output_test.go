package main

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short string untouched", "Acme", 30, "Acme"},
		{"exact length untouched", "abcdef", 6, "abcdef"},
		{"long string gets ellipsis", "abcdefghij", 8, "abcde..."},
		{"multibyte name cut on a rune boundary", "Müller Güneş Ltd", 10, "Müller ..."},
		{"cjk company name", "株式会社テスト商事", 6, "株式会..."},
		{"tiny max has no room for ellipsis", "abcdef", 2, "ab"},
		{"max three keeps three runes", "abcdef", 3, "abc"},
	}
	for _, tc := range tests {
		if got := truncate(tc.in, tc.max); got != tc.want {
			t.Errorf("%s: truncate(%q, %d) = %q, want %q", tc.name, tc.in, tc.max, got, tc.want)
		}
	}
}
