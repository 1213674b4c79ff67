// Package grant detects which userscript manager APIs a script uses and
// adds the @grant declarations its metadata block is missing.
package grant

import (
	"fmt"
	"regexp"
	"strings"
)

// BuiltinPatterns are the API names recognized without configuration.
var BuiltinPatterns = []string{
	`GM[_.][a-zA-Z0-9_]+`,
	`CAT[_.][a-zA-Z0-9_]+`,
	`window\.onurlchange`,
	`window\.close`,
	`window\.focus`,
	`unsafeWindow`,
	`none`,
}

// Detector finds grantable API names in script text. The combined pattern
// is compiled once so a file is scanned in a single pass.
type Detector struct {
	pattern *regexp.Regexp
}

// NewDetector compiles the built-in patterns plus extra into one whole-word
// alternation. Extra patterns are regular expression fragments; each is
// grouped on its own so inline flags such as (?i) stay local to it.
func NewDetector(extra []string) (*Detector, error) {
	all := make([]string, 0, len(BuiltinPatterns)+len(extra))
	all = append(all, BuiltinPatterns...)
	for _, p := range extra {
		if _, err := regexp.Compile(p); err != nil {
			return nil, fmt.Errorf("extra grant pattern %q: %w", p, err)
		}
		all = append(all, "(?:"+p+")")
	}

	re, err := regexp.Compile(`\b(` + strings.Join(all, "|") + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compiling grant pattern: %w", err)
	}
	return &Detector{pattern: re}, nil
}

// Detect returns every match in text in order of appearance. A nil result
// means the text uses no grantable API. Empty matches, possible only with
// extra patterns that accept the empty string, are dropped.
func (d *Detector) Detect(text string) []string {
	var out []string
	for _, m := range d.pattern.FindAllString(text, -1) {
		if m != "" {
			out = append(out, m)
		}
	}
	return out
}
