package manuscript

import "testing"

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Hello <b>world</b></p>")
	if got != "Hello  world" {
		t.Errorf("StripHTML = %q, want %q", got, "Hello  world")
	}
}

func TestCountWords(t *testing.T) {
	cases := []struct {
		content string
		want    int
	}{
		{"<p>Hello <b>world</b></p>", 2},
		{"plain text without markup here", 5},
		{"", 0},
		{"   ", 0},
		{"<p></p>", 0},
		// 相邻标签不会把两个词粘成一个。
		{"<p>one</p><p>two</p>", 2},
		{"<div>  spaced   out  </div>", 2},
	}
	for _, tc := range cases {
		if got := CountWords(tc.content); got != tc.want {
			t.Errorf("CountWords(%q) = %d, want %d", tc.content, got, tc.want)
		}
	}
}
