package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatForPath(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"site.yaml", FormatYAML},
		{"site.yml", FormatYAML},
		{"site.toml", FormatTOML},
		{"site.json", FormatJSON},
		{"site", FormatYAML},
	}
	for _, c := range cases {
		if got := FormatForPath(c.path); got != c.want {
			t.Errorf("FormatForPath(%q) = %q, want %q", c.path, got, c.want)
		}
	}
}

// Converting YAML to TOML and back must not lose or alter any value.
func TestEncodeDecodeAcrossFormats(t *testing.T) {
	src := []byte(`
site:
  author: Jane Doe
  name: Test Site
  url: https://blog.example.com
social:
  - platform: github
    url: https://github.com/janedoe
menu:
  items:
    - label: About
      path: pages/about-me.html
pagination:
  page_size: 5
plugins: [sitemap, neighbors]
`)
	cfg, err := Decode(src, FormatYAML)
	if err != nil {
		t.Fatalf("Decode yaml: %v", err)
	}

	asTOML, err := Encode(cfg, FormatTOML)
	if err != nil {
		t.Fatalf("Encode toml: %v", err)
	}
	back, err := Decode(asTOML, FormatTOML)
	if err != nil {
		t.Fatalf("Decode toml: %v", err)
	}

	if diff := cmp.Diff(cfg, back); diff != "" {
		t.Errorf("yaml -> toml -> struct mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeUnknownFormat(t *testing.T) {
	if _, err := Decode([]byte("x"), Format("ini")); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
