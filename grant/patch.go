package grant

import (
	"strings"

	"github.com/initializ/scriptgrant/metadata"
)

// Outcome records which gate a file stopped at.
type Outcome string

const (
	OutcomeNoHeader Outcome = "no-header"
	OutcomeNoUsage  Outcome = "no-usage"
	OutcomeDeclared Outcome = "declared"
	OutcomePatched  Outcome = "patched"
)

// Result is the outcome of processing one file.
type Result struct {
	Outcome Outcome
	Used    []string // distinct used APIs, first-match order
	Added   []string // grants inserted, first-match order
	Code    string   // patched text; equal to the input unless Outcome is OutcomePatched
}

// Missing returns the entries of used not present in granted, de-duplicated
// and kept in first-match order.
func Missing(used []string, granted map[string]bool) []string {
	seen := make(map[string]bool, len(used))
	var out []string
	for _, name := range used {
		if granted[name] || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

// Patch inserts one @grant line per name immediately before the end marker
// at offset end. Everything before and after the insertion point is kept
// byte for byte.
func Patch(code string, end int, missing []string, layout metadata.Layout) string {
	if len(missing) == 0 {
		return code
	}

	var b strings.Builder
	b.Grow(len(code) + len(missing)*(len(layout.Indent)+layout.KeyWidth+32))
	b.WriteString(code[:end])
	for _, name := range missing {
		b.WriteString(metadata.FormatDirective(layout, metadata.GrantKey, name))
		b.WriteString(layout.Newline)
	}
	b.WriteString(code[end:])
	return b.String()
}

// Process runs the full check for one script. When parsed is non-nil it
// supplies the declared grants and key width instead of the header text.
func Process(code string, d *Detector, parsed *metadata.Header) Result {
	res := Result{Code: code}

	end, ok := metadata.Locate(code)
	if !ok {
		res.Outcome = OutcomeNoHeader
		return res
	}

	used := d.Detect(code)
	if len(used) == 0 {
		res.Outcome = OutcomeNoUsage
		return res
	}
	res.Used = Missing(used, nil)

	header := code[:end]
	var granted map[string]bool
	var layout metadata.Layout
	if parsed != nil {
		granted = parsed.Grants()
		layout = parsed.Layout()
		if strings.Contains(header, "\r\n") {
			layout.Newline = "\r\n"
		}
	} else {
		granted = metadata.ExtractGrants(header)
		layout = metadata.LayoutOf(header)
	}

	missing := Missing(used, granted)
	if len(missing) == 0 {
		res.Outcome = OutcomeDeclared
		return res
	}

	res.Outcome = OutcomePatched
	res.Added = missing
	res.Code = Patch(code, end, missing, layout)
	return res
}
