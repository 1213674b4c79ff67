// Package metadata reads and writes the "// ==UserScript==" block that
// userscript managers expect at the top of a script.
package metadata

import (
	"regexp"
	"strings"
)

const (
	// StartMarker opens a metadata block.
	StartMarker = "// ==UserScript=="
	// EndMarker closes a metadata block.
	EndMarker = "// ==/UserScript=="
	// KeyGap separates the padded key column from the value column.
	KeyGap = "    "
	// GrantKey is the directive that declares a permitted API.
	GrantKey = "grant"
)

var (
	endMarkerPattern = regexp.MustCompile(`//\s*==/UserScript==`)
	grantLinePattern = regexp.MustCompile(`//\s*@grant\s+(.+)`)
	directivePattern = regexp.MustCompile(`^[ \t]*//([ \t]*)@([\w:.-]+)(?:([ \t]+)(.*?))?[ \t]*$`)
	keyPattern       = regexp.MustCompile(`^[\w:.-]+$`)
)

// Directive is a single "// @key value" line.
type Directive struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// Layout describes how directive lines are written so new lines line up
// with the ones already present.
type Layout struct {
	Indent   string // whitespace between "//" and "@"
	KeyWidth int    // the key is right-padded to this width before KeyGap
	Newline  string
}

// DefaultLayout is used when nothing can be learned from the header.
func DefaultLayout() Layout {
	return Layout{Indent: " ", Newline: "\n"}
}

// ValidKey reports whether key is read back whole from a directive line.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Locate returns the byte offset of the end marker in text.
func Locate(text string) (int, bool) {
	loc := endMarkerPattern.FindStringIndex(text)
	if loc == nil {
		return 0, false
	}
	return loc[0], true
}

// ExtractGrants returns the distinct values of every @grant line in header.
// It returns an empty set when the header declares nothing.
func ExtractGrants(header string) map[string]bool {
	grants := make(map[string]bool)
	for _, m := range grantLinePattern.FindAllStringSubmatch(header, -1) {
		grants[strings.TrimSpace(m[1])] = true
	}
	return grants
}

// LayoutOf derives the directive layout from the header text. The key width
// comes from the widest "@key<spaces>" token minus KeyGap, clamped at zero;
// the indent comes from the last directive line.
func LayoutOf(header string) Layout {
	layout := DefaultLayout()
	if strings.Contains(header, "\r\n") {
		layout.Newline = "\r\n"
	}

	widest := 0
	for _, line := range splitLines(header) {
		m := directivePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		layout.Indent = m[1]
		if m[3] == "" || m[4] == "" {
			continue
		}
		if w := len(m[2]) + len(m[3]); w > widest {
			widest = w
		}
	}

	layout.KeyWidth = max(widest-len(KeyGap), 0)
	return layout
}

// FormatDirective renders one directive line without a trailing newline.
func FormatDirective(layout Layout, key, value string) string {
	var b strings.Builder
	b.WriteString("//")
	b.WriteString(layout.Indent)
	b.WriteByte('@')
	if value == "" {
		b.WriteString(key)
		return b.String()
	}
	b.WriteString(key)
	if pad := layout.KeyWidth - len(key); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString(KeyGap)
	b.WriteString(value)
	return b.String()
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
