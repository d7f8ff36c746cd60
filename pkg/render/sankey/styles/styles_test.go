package styles

import (
	"bytes"
	"strings"
	"testing"
)

func TestByName(t *testing.T) {
	for _, name := range Names() {
		s, ok := ByName(name)
		if !ok {
			t.Fatalf("ByName(%q) not found", name)
		}
		if s.Name() != name {
			t.Errorf("Name() = %q, want %q", s.Name(), name)
		}
	}
	if _, ok := ByName("handdrawn"); ok {
		t.Error("ByName(handdrawn) should fail")
	}
	if s, _ := ByName(""); s.Name() != "simple" {
		t.Error("empty name should select simple")
	}
}

func TestSimpleSegment(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderSegment(&buf, Segment{Bar: 1, Index: 2, X: 10, Y: 20.5, W: 14, H: 100, Title: "a & b"})
	out := buf.String()

	for _, want := range []string{
		`data-bar="1"`, `data-segment="2"`, `x="10"`, `y="20.5"`,
		`width="14"`, `style="fill: grey;"`, "<title>a &amp; b</title>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("segment output missing %q:\n%s", want, out)
		}
	}
}

func TestSimpleRibbon(t *testing.T) {
	var buf bytes.Buffer
	Simple{}.RenderRibbon(&buf, Ribbon{Row: 3, Value: 12.5, D: "M 0 0 Z", Fill: "#ff0000"})
	out := buf.String()

	for _, want := range []string{`data-row="3"`, `data-value="12.5"`, `d="M 0 0 Z"`, `fill:#ff0000;`} {
		if !strings.Contains(out, want) {
			t.Errorf("ribbon output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<title>") {
		t.Error("empty title should not render")
	}
}

func TestRibbonDefaultFill(t *testing.T) {
	var buf bytes.Buffer
	Outline{}.RenderRibbon(&buf, Ribbon{Row: 0, D: "M 0 0 Z"})
	if !strings.Contains(buf.String(), DefaultRibbon) {
		t.Errorf("expected default fill, got %s", buf.String())
	}
}

func TestRenderLabel(t *testing.T) {
	tests := []struct {
		name  string
		label Label
		want  []string
	}{
		{"start", Label{Text: "A<B", X: 17, Y: 0, Anchor: "start", Shift: true}, []string{`text-anchor="start"`, `baseline-shift="-1em"`, "A&lt;B"}},
		{"end", Label{Text: "Z", X: 783, Y: 600, Anchor: "end"}, []string{`text-anchor="end"`, `y="600"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Simple{}.RenderLabel(&buf, tt.label)
			for _, w := range tt.want {
				if !strings.Contains(buf.String(), w) {
					t.Errorf("label missing %q: %s", w, buf.String())
				}
			}
			if !tt.label.Shift && strings.Contains(buf.String(), "baseline-shift") {
				t.Error("unexpected baseline shift")
			}
		})
	}
}

func TestRibbonFillIsEscaped(t *testing.T) {
	for _, s := range []Style{Simple{}, Outline{}} {
		var buf bytes.Buffer
		s.RenderRibbon(&buf, Ribbon{Row: 0, D: "M 0 0 Z", Fill: `red"/><script>`})
		out := buf.String()
		if strings.Contains(out, "<script>") {
			t.Errorf("%s: fill not escaped:\n%s", s.Name(), out)
		}
		if !strings.Contains(out, "red&#34;/&gt;&lt;script&gt;") {
			t.Errorf("%s: escaped fill missing:\n%s", s.Name(), out)
		}
	}
}
