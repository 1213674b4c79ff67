package metadata

import (
	"strings"
)

// Header is the parsed form of a metadata block: the directives in source
// order and the length of the longest key, which fixes the key column.
type Header struct {
	Directives []Directive
	MaxKeyLen  int
}

// NewHeader builds a Header from directives and computes MaxKeyLen.
func NewHeader(directives []Directive) *Header {
	h := &Header{Directives: directives}
	for _, d := range directives {
		if len(d.Key) > h.MaxKeyLen {
			h.MaxKeyLen = len(d.Key)
		}
	}
	return h
}

// Parse reads the metadata block at the top of text. It returns false when
// text has no end marker.
func Parse(text string) (*Header, bool) {
	end, ok := Locate(text)
	if !ok {
		return nil, false
	}

	var directives []Directive
	for _, line := range splitLines(text[:end]) {
		m := directivePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		directives = append(directives, Directive{Key: m[2], Value: strings.TrimSpace(m[4])})
	}
	return NewHeader(directives), true
}

// Values returns the values of every directive with the given key, in order.
func (h *Header) Values(key string) []string {
	var out []string
	for _, d := range h.Directives {
		if d.Key == key {
			out = append(out, d.Value)
		}
	}
	return out
}

// Grants returns the set of declared @grant values.
func (h *Header) Grants() map[string]bool {
	grants := make(map[string]bool)
	for _, v := range h.Values(GrantKey) {
		grants[v] = true
	}
	return grants
}

// Layout returns the layout Render uses for this header.
func (h *Header) Layout() Layout {
	layout := DefaultLayout()
	layout.KeyWidth = h.MaxKeyLen
	return layout
}

// Render writes the full block, both markers included, ending in a newline.
func (h *Header) Render() string {
	layout := h.Layout()

	var b strings.Builder
	b.WriteString(StartMarker)
	b.WriteString(layout.Newline)
	for _, d := range h.Directives {
		b.WriteString(FormatDirective(layout, d.Key, d.Value))
		b.WriteString(layout.Newline)
	}
	b.WriteString(EndMarker)
	b.WriteString(layout.Newline)
	return b.String()
}
