package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yuhanzhou/foxden/internal/model/chat"
	"github.com/yuhanzhou/foxden/internal/model/persona"
	"github.com/yuhanzhou/foxden/internal/service/ai"
	chatservice "github.com/yuhanzhou/foxden/internal/service/chat"
	"github.com/yuhanzhou/foxden/internal/service/history"
)

var fox = persona.Persona{ID: "fox", Name: "Fox", OpeningLine: "Ask me anything."}

func TestRenderTranscriptShowsOpeningLineWhenEmpty(t *testing.T) {
	out := renderTranscript(DefaultStyles(), fox, nil, "", false, 80)

	if !strings.Contains(out, "Ask me anything.") {
		t.Fatalf("empty transcript should show the opening line:\n%s", out)
	}
}

func TestRenderTranscriptLabelsSpeakers(t *testing.T) {
	turns := []chat.Turn{
		{Role: chat.RoleUser, Content: "Hello"},
		{Role: chat.RoleAssistant, Content: "Hi there"},
	}

	out := renderTranscript(DefaultStyles(), fox, turns, "", false, 80)

	if !strings.Contains(out, "You:") || !strings.Contains(out, "Fox:") {
		t.Fatalf("missing speaker labels:\n%s", out)
	}
	if strings.Index(out, "Hello") > strings.Index(out, "Hi there") {
		t.Fatalf("turns rendered out of order:\n%s", out)
	}
}

func TestRenderTranscriptShowsPendingReply(t *testing.T) {
	turns := []chat.Turn{{Role: chat.RoleUser, Content: "Hello"}}

	out := renderTranscript(DefaultStyles(), fox, turns, "partial rep", true, 80)

	if !strings.Contains(out, "partial rep") {
		t.Fatalf("pending streamed reply not rendered:\n%s", out)
	}
}

func TestRenderSearchResults(t *testing.T) {
	entries := []history.Entry{
		{
			Question:  "what is a fox?",
			Answer:    strings.Repeat("long answer ", 30),
			CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		},
	}

	out := renderSearchResults(DefaultStyles(), "fox", entries, 80)

	if !strings.Contains(out, "what is a fox?") {
		t.Fatalf("question missing from results:\n%s", out)
	}
	if !strings.Contains(out, "2026-03-14 09:26:53") {
		t.Fatalf("timestamp missing from results:\n%s", out)
	}
	if !strings.Contains(out, "...") {
		t.Fatalf("long answer should be truncated:\n%s", out)
	}
}

func TestRenderSearchResultsEmpty(t *testing.T) {
	out := renderSearchResults(DefaultStyles(), "zebra", nil, 80)

	if !strings.Contains(out, "zebra") {
		t.Fatalf("empty result message should echo the term:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 100); got != "short" {
		t.Fatalf("short strings must pass through, got %q", got)
	}
	long := strings.Repeat("x", 150)
	if got := truncate(long, 100); len([]rune(got)) != 103 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected truncation: %q", got)
	}
}

func TestLateDeltaAfterReplyIsDropped(t *testing.T) {
	ctrl := chatservice.NewController(nil, nil, 0)
	m := New(context.Background(), ctrl, nil, fox, true)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = updated.(Model)

	// A stream is in flight: one delta has been rendered.
	m.busy = true
	m.deltas = make(chan string, 1)
	updated, _ = m.Update(deltaMsg{chunk: "hello there"})
	m = updated.(Model)
	if m.pending != "hello there" {
		t.Fatalf("expected pending delta text, got %q", m.pending)
	}

	// The full reply lands and is integrated into the transcript.
	reply := chat.NewTurn(chat.RoleAssistant, "hello there friend")
	ctrl.Transcript().Append(chat.NewTurn(chat.RoleUser, "hi"))
	ctrl.Transcript().Append(reply)
	updated, _ = m.Update(replyMsg{turn: reply})
	m = updated.(Model)
	if m.pending != "" || m.deltas != nil {
		t.Fatalf("reply should clear streaming state: pending=%q", m.pending)
	}

	// A delta queued before the reply arrives late: it must not resurrect
	// a pending block under the already-appended assistant turn.
	updated, _ = m.Update(deltaMsg{chunk: " friend"})
	m = updated.(Model)
	if m.pending != "" {
		t.Fatalf("late delta resurrected pending text: %q", m.pending)
	}

	rendered := renderTranscript(m.style, m.companion, ctrl.Transcript().Context(), m.pending, m.busy, 80)
	if got := strings.Count(rendered, "Fox:"); got != 1 {
		t.Fatalf("expected a single companion block, got %d:\n%s", got, rendered)
	}
}

func TestFriendlyErrorKinds(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{chatservice.ErrBusy, "still waiting"},
		{chatservice.ErrEmptyMessage, "type a message"},
		{ai.ErrProviderAuth, "credentials"},
		{ai.ErrProviderRateLimited, "rate limiting"},
		{ai.ErrProviderUnavailable, "could not reach"},
		{ai.ErrMalformedResponse, "unreadable"},
		{history.ErrEmptyTerm, "search term"},
		{errors.New("plain failure"), "plain failure"},
	}

	for _, tc := range cases {
		if got := friendlyError(tc.err); !strings.Contains(got, tc.want) {
			t.Fatalf("friendlyError(%v) = %q, want substring %q", tc.err, got, tc.want)
		}
	}
}
