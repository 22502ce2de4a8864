package components

import (
	"strings"
	"testing"
)

func TestRenderTimeBar_Clock(t *testing.T) {
	out := RenderTimeBar(100, 600, 80, false)
	if !strings.Contains(out, "1:40") {
		t.Errorf("expected clock 1:40 in output, got %q", out)
	}
}

func TestRenderTimeBar_LowTimeStillRenders(t *testing.T) {
	out := RenderTimeBar(42, 600, 80, true)
	if !strings.Contains(out, "0:42") {
		t.Errorf("expected clock 0:42 in output, got %q", out)
	}
}

func TestRenderTimeBar_NarrowWidthFallsBackToClock(t *testing.T) {
	out := RenderTimeBar(90, 600, 10, false)
	if !strings.Contains(out, "1:30") {
		t.Errorf("expected bare clock at narrow width, got %q", out)
	}
}

func TestRenderTimeBar_NeverNegative(t *testing.T) {
	out := RenderTimeBar(-5, 600, 80, true)
	if !strings.Contains(out, "0:00") {
		t.Errorf("expected clock floored at 0:00, got %q", out)
	}
}
