package lint

import (
	"testing"
)

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"plain heading", "# About Me\n\ntext\n", "About Me"},
		{"heading with emphasis", "# About *Me*\n", "About Me"},
		{"no heading", "just text\n", ""},
		{"h2 only", "## Section\n", ""},
		{"heading after paragraph", "intro\n\n# Late Title\n", "Late Title"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ExtractTitle([]byte(c.body)); got != c.want {
				t.Errorf("ExtractTitle = %q, want %q", got, c.want)
			}
		})
	}
}

func TestExtractLinks(t *testing.T) {
	body := []byte("A [link](https://example.com) and ![img](/images/x.png) and <https://auto.example>\n")
	links := ExtractLinks(body)
	want := map[string]bool{
		"https://example.com":  false,
		"/images/x.png":        false,
		"https://auto.example": false,
	}
	for _, l := range links {
		if _, ok := want[l]; ok {
			want[l] = true
		}
	}
	for dest, seen := range want {
		if !seen {
			t.Errorf("link %q not extracted (got %v)", dest, links)
		}
	}
}
