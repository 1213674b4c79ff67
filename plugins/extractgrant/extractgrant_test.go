package extractgrant

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/initializ/scriptgrant/bundle"
	"github.com/initializ/scriptgrant/grant"
	"github.com/initializ/scriptgrant/metadata"
	"github.com/initializ/scriptgrant/plugins"
	"github.com/initializ/scriptgrant/plugins/header"
	"github.com/initializ/scriptgrant/runtime"
)

const script = `// ==UserScript==
// @name         Demo
// @grant        GM_setValue
// ==/UserScript==
GM_getValue("a");
GM_setValue("a", 1);
`

func chunk(name, code string) *bundle.Chunk {
	return &bundle.Chunk{FileName: name, Kind: bundle.KindChunk, Code: code}
}

func TestPlugin_PatchesScriptChunks(t *testing.T) {
	var logs bytes.Buffer
	p, err := New(nil, WithLogger(runtime.NewJSONLogger(&logs, false)))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	main := chunk("main.user.js", script)
	plain := chunk("vendor.js", "console.log(1);\n")
	mapFile := chunk("main.user.js.map", script)
	asset := &bundle.Chunk{FileName: "x.js", Kind: bundle.KindAsset, Code: script}

	b := bundle.New()
	for _, c := range []*bundle.Chunk{main, plain, mapFile, asset} {
		b.Add(c)
	}

	if err := p.Execute(context.Background(), plugins.HookGenerateBundlePost, b); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if !main.Dirty || !strings.Contains(main.Code, "// @grant        GM_getValue\n// ==/UserScript==") {
		t.Errorf("main not patched:\n%s", main.Code)
	}
	for _, c := range []*bundle.Chunk{plain, mapFile, asset} {
		if c.Dirty {
			t.Errorf("%s should not be modified", c.FileName)
		}
	}

	reports := p.Reports()
	if len(reports) != 2 {
		t.Fatalf("reports = %+v, want 2 entries", reports)
	}
	if reports[0].FileName != "main.user.js" || reports[0].Outcome != grant.OutcomePatched {
		t.Errorf("reports[0] = %+v", reports[0])
	}
	if reports[1].FileName != "vendor.js" || reports[1].Outcome != grant.OutcomeNoHeader {
		t.Errorf("reports[1] = %+v", reports[1])
	}
	if !strings.Contains(logs.String(), `"msg":"grants added"`) {
		t.Errorf("expected info log, got %s", logs.String())
	}
}

func TestPlugin_DryRun(t *testing.T) {
	p, err := New(nil, WithDryRun())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	c := chunk("main.js", script)
	b := bundle.New()
	b.Add(c)

	if err := p.Execute(context.Background(), plugins.HookGenerateBundlePost, b); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if c.Dirty || c.Code != script {
		t.Error("dry run modified the chunk")
	}
	if r := p.Reports(); len(r) != 1 || len(r[0].Added) != 1 || r[0].Added[0] != "GM_getValue" {
		t.Errorf("Reports() = %+v", r)
	}
}

func TestPlugin_InvalidAppendGrant(t *testing.T) {
	if _, err := New([]string{"("}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestPlugin_UsesHeaderPlugin(t *testing.T) {
	hp := header.New(header.Options{
		Directives: []metadata.Directive{
			{Key: "name", Value: "Demo"},
			{Key: "description", Value: "uses the parsed block"},
			{Key: "grant", Value: "GM_setValue"},
		},
	})
	gp, err := New([]string{`MY_bridge`})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	r := plugins.NewRegistry()
	r.Register(gp) //nolint:errcheck
	r.Register(hp) //nolint:errcheck
	if err := r.Resolve(); err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}

	c := chunk("demo.user.js", "GM_setValue(1); MY_bridge();\n")
	b := bundle.New()
	b.Add(c)

	ctx := context.Background()
	if err := r.Run(ctx, plugins.HookGenerateBundle, b); err != nil {
		t.Fatalf("Run(generate-bundle) error: %v", err)
	}
	if err := r.Run(ctx, plugins.HookGenerateBundlePost, b); err != nil {
		t.Fatalf("Run(generate-bundle:post) error: %v", err)
	}

	if !strings.Contains(c.Code, "// @grant          MY_bridge\n// ==/UserScript==") {
		t.Errorf("unexpected code:\n%s", c.Code)
	}
	if strings.Count(c.Code, "GM_setValue") != 2 {
		t.Errorf("GM_setValue should be declared once and called once:\n%s", c.Code)
	}
}

type staticHeaders struct{ h *metadata.Header }

func (s staticHeaders) HeaderFor(string) *metadata.Header { return s.h }

func TestPlugin_WithHeaderSource(t *testing.T) {
	h := metadata.NewHeader([]metadata.Directive{{Key: "grant", Value: "GM_getValue"}, {Key: "grant", Value: "GM_setValue"}})
	p, err := New(nil, WithHeaderSource(staticHeaders{h}))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	// A registered header plugin must not replace an explicit source.
	r := plugins.NewRegistry()
	r.Register(header.New(header.Options{})) //nolint:errcheck
	p.Resolve(r)                             //nolint:errcheck

	c := chunk("main.js", "// ==UserScript==\n// ==/UserScript==\nGM_getValue(); GM_setValue();\n")
	b := bundle.New()
	b.Add(c)
	if err := p.Execute(context.Background(), plugins.HookGenerateBundlePost, b); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if c.Dirty {
		t.Errorf("chunk should be untouched when the source declares everything:\n%s", c.Code)
	}
}
