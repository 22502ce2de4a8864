package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kurso-app/kurso/internal/screen"
)

// stubScreen is a minimal Screen for router tests.
type stubScreen struct {
	name string
}

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(width, height int) string           { return s.name }
func (s *stubScreen) Title() string                           { return s.name }

func TestPushPop(t *testing.T) {
	r := New(&stubScreen{name: "home"})

	r.Update(PushScreenMsg{Screen: &stubScreen{name: "quiz"}})
	if r.Depth() != 2 {
		t.Fatalf("Depth = %d, want 2", r.Depth())
	}
	if got := r.Active().Title(); got != "quiz" {
		t.Errorf("Active = %q, want quiz", got)
	}

	r.Update(PopScreenMsg{})
	if got := r.Active().Title(); got != "home" {
		t.Errorf("Active after pop = %q, want home", got)
	}
}

func TestPop_RootStays(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	r.Update(PopScreenMsg{})
	if r.Depth() != 1 {
		t.Errorf("Depth = %d, want 1 (root never pops)", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	r := New(&stubScreen{name: "home"})
	r.Update(PushScreenMsg{Screen: &stubScreen{name: "quiz"}})
	r.Update(ReplaceScreenMsg{Screen: &stubScreen{name: "course"}})

	if r.Depth() != 2 {
		t.Errorf("Depth = %d, want 2 after replace", r.Depth())
	}
	if got := r.Active().Title(); got != "course" {
		t.Errorf("Active = %q, want course", got)
	}
}
