package goldmark

import (
	"context"
	"testing"
	"time"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

func TestParser_New(t *testing.T) {
	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(tt.flavor)

			if p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func textsOf(doc *dom.Document) []string {
	var out []string
	for _, n := range doc.TextNodes() {
		out = append(out, n.Data)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParser_Parse_Basic(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx := context.Background()

	content := []byte("# Hello\n\nWorld")
	doc, err := parser.Parse(ctx, "test.md", content)

	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if doc == nil {
		t.Fatal("expected non-nil document")
	}

	// Check path.
	if doc.Path != "test.md" {
		t.Errorf("Path = %q, want %q", doc.Path, "test.md")
	}

	// Check content is copied.
	if string(doc.Content) != string(content) {
		t.Errorf("Content mismatch")
	}

	// Verify content is a copy, not the same slice.
	content[0] = 'X'
	if doc.Content[0] == 'X' {
		t.Error("Content should be a copy, not the original slice")
	}

	want := []string{"Hello", "\n", "World", "\n"}
	if got := textsOf(doc); !equalStrings(got, want) {
		t.Errorf("text nodes = %q, want %q", got, want)
	}
}

func TestParser_Parse_HeadingIDs(t *testing.T) {
	doc, err := New(FlavorCommonMark).Parse(context.Background(), "", []byte("# Getting started\n\nText.\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	h := doc.ElementByID("getting-started")
	if h == nil {
		t.Fatal("expected heading with generated id")
	}
	if h.Tag != "h1" {
		t.Errorf("Tag = %q, want h1", h.Tag)
	}
}

func TestParser_Parse_InlineMarkup(t *testing.T) {
	doc, err := New(FlavorCommonMark).Parse(context.Background(), "", []byte("Some *emphasis* and `code`.\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []string{"Some ", "emphasis", " and ", "code", ".", "\n"}
	if got := textsOf(doc); !equalStrings(got, want) {
		t.Errorf("text nodes = %q, want %q", got, want)
	}
}

func TestParser_Parse_GFM(t *testing.T) {
	content := []byte("~~gone~~ text\n")

	gfm, err := New(FlavorGFM).Parse(context.Background(), "", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if dom.FindFirst(gfm.Root, func(n *dom.Node) bool { return n.Tag == "del" }) == nil {
		t.Error("GFM should render strikethrough")
	}

	cm, err := New(FlavorCommonMark).Parse(context.Background(), "", content)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := textsOf(cm); len(got) == 0 || got[0] != "~~gone~~ text" {
		t.Errorf("CommonMark text nodes = %q", got)
	}
}

func TestParser_Parse_RawHTML(t *testing.T) {
	doc, err := New(FlavorCommonMark).Parse(context.Background(), "", []byte("<div id=\"box\">inside</div>\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if doc.ElementByID("box") == nil {
		t.Error("raw HTML should be kept")
	}
}

func TestParser_Parse_Cancelled(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestParser_Parse_Timeout(t *testing.T) {
	parser := New(FlavorCommonMark)
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	time.Sleep(time.Millisecond)

	_, err := parser.Parse(ctx, "test.md", []byte("# Hello"))
	if err == nil {
		t.Error("expected error for expired context")
	}
}

func TestParser_Render(t *testing.T) {
	out, err := New(FlavorCommonMark).Render([]byte("Hi"))
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if string(out) != "<p>Hi</p>\n" {
		t.Errorf("Render() = %q", out)
	}
}
