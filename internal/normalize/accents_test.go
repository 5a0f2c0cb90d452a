package normalize

import "testing"

func TestFoldAccents(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"é", "e"},
		{"gestão", "gestao"},
		{"júnior", "junior"},
		{"análise", "analise"},
		{"plain", "plain"},
	}
	for _, tc := range cases {
		if got := foldAccents(tc.in); got != tc.want {
			t.Errorf("foldAccents(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
