package tui

import (
	"strings"
	"testing"
)

// TestHelpWrap verifies the wrap width tracks the terminal within bounds.
func TestHelpWrap(t *testing.T) {
	cases := []struct {
		width int
		want  int
	}{
		{width: 0, want: helpMaxWrap},
		{width: 20, want: helpMinWrap},
		{width: 50, want: 42},
		{width: 200, want: helpMaxWrap},
	}
	for _, tc := range cases {
		if got := helpWrap(tc.width); got != tc.want {
			t.Fatalf("helpWrap(%d) = %d, want %d", tc.width, got, tc.want)
		}
	}
}

// TestHelpOverlayCachesPerWidth verifies output is reused until the wrap or text changes.
func TestHelpOverlayCachesPerWidth(t *testing.T) {
	m, _ := newTestModel(t)
	h := &helpOverlay{}

	first := h.view(m.helpText(), 100)
	if !strings.Contains(first, "toggle") {
		t.Fatalf("expected rendered help, got %q", first)
	}
	h.out = "cached"
	if got := h.view(m.helpText(), 120); got != "cached" {
		t.Fatalf("expected cached output for same wrap, got %q", got)
	}
	if got := h.view(m.helpText(), 40); got == "cached" {
		t.Fatalf("expected re-render after wrap change")
	}
	if h.wrap != helpWrap(40) {
		t.Fatalf("wrap = %d, want %d", h.wrap, helpWrap(40))
	}

	h.out = "cached"
	if got := h.view("# Other", 40); got == "cached" || !strings.Contains(got, "Other") {
		t.Fatalf("expected re-render after text change, got %q", got)
	}
}
