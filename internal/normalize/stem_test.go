package normalize

import "testing"

func TestStem(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"rapidamente", "rapida"},
		{"desenvolvimento", "desenvolv"},
		{"cientista", "cient"},
		{"sp", "sp"},     // too short to strip anything
		{"ivo", "ivo"},   // stripping "ivo" would leave < 3 runes
	}
	for _, tc := range cases {
		if got := stem(tc.in); got != tc.want {
			t.Errorf("stem(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
