// Package history implements the local attempt history screen.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kurso-app/kurso/internal/router"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/store"
	"github.com/kurso-app/kurso/internal/ui/layout"
	"github.com/kurso-app/kurso/internal/ui/theme"
)

type historyLoadedMsg struct {
	Attempts []store.Attempt
	Err      error
}

// HistoryScreen lists recent quiz attempts recorded on this machine.
type HistoryScreen struct {
	attempts store.AttemptRepo
	records  []store.Attempt
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates the history screen. attempts may be nil when the local
// store could not be opened.
func New(attempts store.AttemptRepo) *HistoryScreen {
	return &HistoryScreen{attempts: attempts}
}

func (s *HistoryScreen) Init() tea.Cmd {
	if s.attempts == nil {
		return func() tea.Msg { return historyLoadedMsg{} }
	}
	attempts := s.attempts
	return func() tea.Msg {
		records, err := attempts.Recent(context.Background(), 50)
		return historyLoadedMsg{Attempts: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string { return "History" }

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.ErrorText.Render("\n\n  Could not load history: " + s.errMsg)
	}
	if !s.loaded {
		return theme.DimText.Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return theme.DimText.Render("\n\n  No attempts yet. Take a quiz!")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, rec := range s.records {
		badge := theme.ErrorText.Render("FAIL")
		if rec.Passed {
			badge = theme.SuccessText.Render("PASS")
		}

		mins := rec.DurationSecs / 60
		secs := rec.DurationSecs % 60

		line := fmt.Sprintf("%s  %-30s %5.0f%%  %d:%02d  ",
			rec.Timestamp.Format("Jan 02 15:04"),
			truncate(rec.QuizTitle, 30),
			rec.Score, mins, secs)
		if rec.Trigger == "timeout" {
			line += "⏱ "
		}

		prefix := "    "
		style := theme.BodyText
		if i == s.selected {
			prefix = "  ▸ "
			style = style.Bold(true)
		}
		b.WriteString(prefix + style.Render(line) + badge)
		b.WriteString("\n")
		if i == s.selected && rec.CourseTitle != "" {
			b.WriteString(theme.DimText.Render(fmt.Sprintf(
				"      %s  ·  %d/%d correct", rec.CourseTitle, rec.CorrectCount, rec.TotalQuestions)))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
