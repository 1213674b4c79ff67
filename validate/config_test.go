package validate

import (
	"strings"
	"testing"

	"github.com/initializ/scriptgrant/metadata"
	"github.com/initializ/scriptgrant/types"
)

func validConfig() *types.Config {
	return &types.Config{
		OutDir:      "dist",
		Chunks:      []string{"**/*.user.js"},
		ExtraGrants: []string{`MY_[a-z]+`},
		Header: types.HeaderConfig{
			Entries: []string{"main.user.js"},
			Meta: types.Meta{
				{Key: "name", Value: "Demo"},
				{Key: "version", Value: "1.2.3"},
				{Key: "match", Value: "https://example.com/*"},
			},
		},
	}
}

func hasEntry(list []string, substr string) bool {
	for _, s := range list {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func TestValidateConfig_Valid(t *testing.T) {
	r := ValidateConfig(validConfig())
	if !r.IsValid() {
		t.Fatalf("expected valid, got errors: %v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Fatalf("expected no warnings, got: %v", r.Warnings)
	}
}

func TestValidateConfig_MissingOutDir(t *testing.T) {
	cfg := validConfig()
	cfg.OutDir = ""
	r := ValidateConfig(cfg)
	if r.IsValid() || !hasEntry(r.Errors, "out_dir") {
		t.Fatalf("expected out_dir error, got: %v", r.Errors)
	}
}

func TestValidateConfig_BadGlob(t *testing.T) {
	cfg := validConfig()
	cfg.Exclude = []string{"src/[a-"}
	r := ValidateConfig(cfg)
	if !hasEntry(r.Errors, "exclude[0]") {
		t.Fatalf("expected exclude error, got: %v", r.Errors)
	}
}

func TestValidateConfig_BadExtraGrant(t *testing.T) {
	cfg := validConfig()
	cfg.ExtraGrants = []string{`MY_(`}
	r := ValidateConfig(cfg)
	if !hasEntry(r.Errors, "extra_grants[0]") {
		t.Fatalf("expected extra_grants error, got: %v", r.Errors)
	}
	if len(r.Errors) != 1 {
		t.Errorf("expected a single error, got: %v", r.Errors)
	}
}

func TestValidateConfig_EmptyMatchingExtraGrant(t *testing.T) {
	cfg := validConfig()
	cfg.ExtraGrants = []string{`x*`}
	r := ValidateConfig(cfg)
	if !hasEntry(r.Errors, "matches the empty string") {
		t.Fatalf("expected empty-match error, got: %v", r.Errors)
	}
}

func TestValidateConfig_Meta(t *testing.T) {
	tests := []struct {
		name      string
		meta      types.Meta
		wantError string
		wantWarn  string
	}{
		{
			name:      "missing name",
			meta:      types.Meta{{Key: "match", Value: "*://*/*"}},
			wantError: "meta.name is required",
		},
		{
			name: "bad version",
			meta: types.Meta{
				{Key: "name", Value: "x"},
				{Key: "version", Value: "not.a.version"},
				{Key: "match", Value: "*://*/*"},
			},
			wantError: "meta.version",
		},
		{
			name:     "no match",
			meta:     types.Meta{{Key: "name", Value: "x"}},
			wantWarn: "no match or include",
		},
		{
			name: "include counts as match",
			meta: types.Meta{{Key: "name", Value: "x"}, {Key: "include", Value: "*"}},
		},
		{
			name: "none mixed with grants",
			meta: types.Meta{
				{Key: "name", Value: "x"},
				{Key: "match", Value: "*://*/*"},
				{Key: "grant", Value: "none"},
				{Key: "grant", Value: "GM_setValue"},
			},
			wantWarn: "none together",
		},
		{
			name: "key with a space",
			meta: types.Meta{
				{Key: "name", Value: "x"},
				{Key: "match", Value: "*://*/*"},
				{Key: "run at", Value: "document-start"},
			},
			wantError: `key "run at"`,
		},
		{
			name: "value with a line break",
			meta: types.Meta{
				{Key: "name", Value: "x"},
				{Key: "match", Value: "*://*/*"},
				{Key: "description", Value: "one\n// @grant GM_xmlhttpRequest"},
			},
			wantError: "header.meta.description",
		},
		{
			name: "value closing the block",
			meta: types.Meta{
				{Key: "name", Value: "x // ==/UserScript=="},
				{Key: "match", Value: "*://*/*"},
			},
			wantError: "header.meta.name",
		},
		{
			name: "valueless and namespaced keys",
			meta: types.Meta{
				{Key: "name", Value: "x"},
				{Key: "name:zh-CN", Value: "y"},
				{Key: "match", Value: "*://*/*"},
				{Key: "noframes"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.Header.Meta = tt.meta
			r := ValidateConfig(cfg)
			if tt.wantError == "" && !r.IsValid() {
				t.Errorf("unexpected errors: %v", r.Errors)
			}
			if tt.wantError != "" && !hasEntry(r.Errors, tt.wantError) {
				t.Errorf("errors = %v, want containing %q", r.Errors, tt.wantError)
			}
			if tt.wantWarn == "" && len(r.Warnings) != 0 {
				t.Errorf("unexpected warnings: %v", r.Warnings)
			}
			if tt.wantWarn != "" && !hasEntry(r.Warnings, tt.wantWarn) {
				t.Errorf("warnings = %v, want containing %q", r.Warnings, tt.wantWarn)
			}
		})
	}
}

func TestValidateConfig_InactiveHeaderSkipsMeta(t *testing.T) {
	off := false
	cfg := validConfig()
	cfg.Header.Enabled = &off
	cfg.Header.Meta = types.Meta{metadata.Directive{Key: "version", Value: "nope"}}
	r := ValidateConfig(cfg)
	if !r.IsValid() {
		t.Fatalf("disabled header should not be validated, got: %v", r.Errors)
	}
	if !hasEntry(r.Warnings, "header.entries") {
		t.Errorf("expected entries warning, got: %v", r.Warnings)
	}
}
