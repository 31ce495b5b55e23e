// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package help

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		header string
		want   language.Tag
	}{
		{"", language.English},
		{"en-US,en;q=0.9", language.English},
		{"fr-FR,fr;q=0.9,en;q=0.8", language.French},
		{"de-CH", language.German},
		{"ja-JP", language.English},
		{"%%%", language.English},
	}
	for _, tt := range tests {
		if got := Match(tt.header); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestMatchLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{"fr_FR.UTF-8", language.French},
		{"de_DE@euro", language.German},
		{"en_GB", language.English},
		{"", language.English},
	}
	for _, tt := range tests {
		if got := MatchLocale(tt.locale); got != tt.want {
			t.Errorf("MatchLocale(%q) = %v, want %v", tt.locale, got, tt.want)
		}
	}
}

func TestLines(t *testing.T) {
	for _, tag := range Supported {
		lines := Lines(tag)
		if len(lines) != len(order) {
			t.Fatalf("Lines(%v) returned %d entries, want %d", tag, len(lines), len(order))
		}
		for i, e := range lines {
			if e.Key != order[i] {
				t.Errorf("Lines(%v)[%d].Key = %q, want %q", tag, i, e.Key, order[i])
			}
			if e.Text == "" || e.Text == e.Key {
				t.Errorf("Lines(%v)[%d] has no translation for %q", tag, i, e.Key)
			}
			if want := messages[tag][e.Key]; e.Text != want {
				t.Errorf("Lines(%v)[%d].Text = %q, want %q", tag, i, e.Text, want)
			}
		}
	}
}

func TestTitle(t *testing.T) {
	if got := Title(language.English); !strings.Contains(got, "pixel art") {
		t.Errorf("Title(en) = %q", got)
	}
	if got := Title(language.French); got != messages[language.French][keyTitle] {
		t.Errorf("Title(fr) = %q", got)
	}
}

func TestDownloadLineNamesFile(t *testing.T) {
	for _, tag := range Supported {
		for _, e := range Lines(tag) {
			if e.Key == KeyDownload && !strings.Contains(e.Text, "pixel-art.png") {
				t.Errorf("%v download help %q does not name the file", tag, e.Text)
			}
		}
	}
}
