package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"My Cool Script", "my-cool-script"},
		{"  Leading Spaces  ", "leading-spaces"},
		{"special!@#$%chars", "specialchars"},
		{"multiple---hyphens", "multiple-hyphens"},
		{"--leading-trailing--", "leading-trailing"},
		{"Hello   World", "hello-world"},
		{"café-script", "caf-script"},
		{"my_script_name", "my-script-name"},
		{"", ""},
		{"---", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEntryFileName(t *testing.T) {
	if got := EntryFileName("Tab Saver"); got != "tab-saver.user.js" {
		t.Errorf("EntryFileName() = %q", got)
	}
	if got := EntryFileName("!!!"); got != "main.user.js" {
		t.Errorf("EntryFileName() = %q", got)
	}
}
