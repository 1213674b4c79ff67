package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/metadata"
	"github.com/initializ/scriptgrant/types"
)

// ValidationResult holds errors and warnings from config validation.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateConfig checks a Config for errors and warnings.
func ValidateConfig(cfg *types.Config) *ValidationResult {
	r := &ValidationResult{}

	if cfg.OutDir == "" {
		r.Errors = append(r.Errors, "out_dir is required")
	}

	checkPatterns(r, "chunks", cfg.Chunks)
	checkPatterns(r, "exclude", cfg.Exclude)
	checkPatterns(r, "header.entries", cfg.Header.Entries)

	extraOK := true
	for i, p := range cfg.ExtraGrants {
		re, err := regexp.Compile(p)
		if err != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("extra_grants[%d] %q is not a valid expression: %v", i, p, err))
			extraOK = false
			continue
		}
		if re.MatchString("") {
			r.Errors = append(r.Errors, fmt.Sprintf("extra_grants[%d] %q matches the empty string", i, p))
		}
	}
	if extraOK {
		if _, err := grant.NewDetector(cfg.ExtraGrants); err != nil {
			r.Errors = append(r.Errors, err.Error())
		}
	}

	if len(cfg.Header.Entries) > 0 && !cfg.Header.Active() {
		r.Warnings = append(r.Warnings, "header.entries is set but no metadata block will be generated")
	}
	if cfg.Header.Active() {
		validateMeta(r, cfg.Header.Meta)
	}

	return r
}

func validateMeta(r *ValidationResult, meta types.Meta) {
	keysOK := true
	for _, d := range meta {
		if !metadata.ValidKey(d.Key) {
			r.Errors = append(r.Errors, fmt.Sprintf("header.meta key %q is not a valid directive key", d.Key))
			keysOK = false
		}
	}
	if keysOK {
		checkRoundTrip(r, meta)
	}

	names := meta.Values("name")
	if len(names) == 0 || names[0] == "" {
		r.Errors = append(r.Errors, "header.meta.name is required")
	}

	for _, v := range meta.Values("version") {
		if _, err := semver.NewVersion(v); err != nil {
			r.Errors = append(r.Errors, fmt.Sprintf("header.meta.version %q is not a valid version: %v", v, err))
		}
	}

	if len(meta.Values("match")) == 0 && len(meta.Values("include")) == 0 {
		r.Warnings = append(r.Warnings, "header.meta has no match or include directive; the script will not run anywhere")
	}

	grants := meta.Values("grant")
	for _, g := range grants {
		if g == "none" && len(grants) > 1 {
			r.Warnings = append(r.Warnings, "header.meta.grant lists none together with other grants")
			break
		}
	}
}

// checkRoundTrip renders the block and parses it back. A value that spans
// lines or carries a marker comes back as different directives.
func checkRoundTrip(r *ValidationResult, meta types.Meta) {
	parsed, ok := metadata.Parse(metadata.NewHeader(meta).Render())
	if !ok {
		r.Errors = append(r.Errors, "header.meta does not render a complete metadata block")
		return
	}
	for i, d := range meta {
		if i >= len(parsed.Directives) {
			r.Errors = append(r.Errors, fmt.Sprintf("header.meta.%s is lost when the block is rendered", d.Key))
			return
		}
		got := parsed.Directives[i]
		if got.Key != d.Key || got.Value != strings.TrimSpace(d.Value) {
			r.Errors = append(r.Errors, fmt.Sprintf("header.meta.%s value %q does not fit on one directive line", d.Key, d.Value))
			return
		}
	}
	if len(parsed.Directives) > len(meta) {
		r.Errors = append(r.Errors, "header.meta renders extra directives; a value contains a line break")
	}
}

func checkPatterns(r *ValidationResult, field string, patterns []string) {
	for i, p := range patterns {
		if !bundle.ValidPattern(p) {
			r.Errors = append(r.Errors, fmt.Sprintf("%s[%d] %q is not a valid glob", field, i, p))
		}
	}
}
