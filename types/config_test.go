package types

import (
	"reflect"
	"strings"
	"testing"

	"github.com/initializ/scriptgrant/metadata"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
out_dir: build
chunks:
  - "**/*.user.js"
exclude:
  - "legacy/**"
extra_grants:
  - MY_[a-z]+
report: grants.json
header:
  entries: ["*.user.js"]
  meta:
    name: Demo Script
    namespace: https://example.com
    version: 1.2.3
    match:
      - https://a.example/*
      - https://b.example/*
    noframes: true
    run-at: document-end
    grant:
      - GM_setValue
`))
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}

	if cfg.OutDir != "build" || cfg.Report != "grants.json" {
		t.Errorf("OutDir=%q Report=%q", cfg.OutDir, cfg.Report)
	}
	if !reflect.DeepEqual(cfg.ExtraGrants, []string{"MY_[a-z]+"}) {
		t.Errorf("ExtraGrants = %v", cfg.ExtraGrants)
	}

	want := Meta{
		{Key: "name", Value: "Demo Script"},
		{Key: "namespace", Value: "https://example.com"},
		{Key: "version", Value: "1.2.3"},
		{Key: "match", Value: "https://a.example/*"},
		{Key: "match", Value: "https://b.example/*"},
		{Key: "noframes"},
		{Key: "run-at", Value: "document-end"},
		{Key: "grant", Value: "GM_setValue"},
	}
	if !reflect.DeepEqual(cfg.Header.Meta, want) {
		t.Errorf("Meta = %+v\nwant %+v", cfg.Header.Meta, want)
	}
	if !cfg.Header.Active() {
		t.Error("header with meta should be active by default")
	}
	if got := cfg.Header.Meta.Values("match"); len(got) != 2 {
		t.Errorf("Values(match) = %v", got)
	}
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("extra_grants: []\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.OutDir != DefaultOutDir {
		t.Errorf("OutDir = %q, want %q", cfg.OutDir, DefaultOutDir)
	}
	if cfg.Header.Active() {
		t.Error("header without meta should be inactive")
	}
}

func TestHeaderConfig_Disabled(t *testing.T) {
	cfg, err := ParseConfig([]byte("header:\n  enabled: false\n  meta:\n    name: x\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	if cfg.Header.Active() {
		t.Error("enabled: false should disable the header")
	}
}

func TestMeta_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"not a mapping", "header:\n  meta: [a, b]\n", "meta must be a mapping"},
		{"nested mapping", "header:\n  meta:\n    name:\n      en: x\n", "must be a scalar or a list"},
		{"nested list item", "header:\n  meta:\n    match:\n      - [a]\n", "items must be scalars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("ParseConfig() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestMeta_FalseDropsDirective(t *testing.T) {
	cfg, err := ParseConfig([]byte("header:\n  meta:\n    name: x\n    noframes: false\n"))
	if err != nil {
		t.Fatalf("ParseConfig() error: %v", err)
	}
	want := Meta{metadata.Directive{Key: "name", Value: "x"}}
	if !reflect.DeepEqual(cfg.Header.Meta, want) {
		t.Errorf("Meta = %+v, want %+v", cfg.Header.Meta, want)
	}
}
