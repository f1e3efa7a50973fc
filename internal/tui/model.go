package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/yuhanzhou/foxden/internal/model/chat"
	"github.com/yuhanzhou/foxden/internal/model/persona"
	"github.com/yuhanzhou/foxden/internal/service/ai"
	chatservice "github.com/yuhanzhou/foxden/internal/service/chat"
	"github.com/yuhanzhou/foxden/internal/service/history"
)

// mode selects what Enter does, mirroring the original app's dropdown:
// talk to the companion, or search past exchanges.
type mode int

const (
	modeChat mode = iota
	modeSearch
)

// Searcher is the slice of the history store the UI needs.
type Searcher interface {
	Search(ctx context.Context, term string) ([]history.Entry, error)
}

type (
	replyMsg struct {
		turn chat.Turn
		err  error
	}
	deltaMsg struct {
		chunk string
	}
	deltaDoneMsg struct{}
	searchMsg    struct {
		term    string
		entries []history.Entry
		err     error
	}
)

// Model is the bubbletea model for the chat window. All control logic lives
// in the Controller; the model only submits text and renders state.
type Model struct {
	ctx context.Context

	ctrl      *chatservice.Controller
	searcher  Searcher
	companion persona.Persona
	streaming bool

	input    textinput.Model
	viewport viewport.Model
	keyMap   KeyMap
	style    *Style

	mode    mode
	busy    bool
	pending string
	errText string
	results string
	deltas  chan string

	width  int
	height int
	ready  bool
}

// New assembles the chat window around an already-wired controller.
func New(ctx context.Context, ctrl *chatservice.Controller, searcher Searcher, companion persona.Persona, streaming bool) Model {
	input := textinput.New()
	input.Placeholder = "Ask anything..."
	input.Focus()
	input.CharLimit = 0

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		searcher:  searcher,
		companion: companion,
		streaming: streaming,
		input:     input,
		keyMap:    DefaultKeyMap,
		style:     DefaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Submit):
			return m.handleSubmit()

		case key.Matches(msg, m.keyMap.ToggleMode):
			if m.mode == modeChat {
				m.mode = modeSearch
				m.input.Placeholder = "Search past exchanges..."
			} else {
				m.mode = modeChat
				m.input.Placeholder = "Ask anything..."
			}
			m.results = ""
			m.errText = ""
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keyMap.NewConversation):
			if err := m.ctrl.Reset(); err != nil {
				m.errText = friendlyError(err)
			} else {
				m.errText = ""
				m.results = ""
			}
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keyMap.ScrollUp):
			m.viewport.HalfViewUp()
			return m, nil

		case key.Matches(msg, m.keyMap.ScrollDown):
			m.viewport.HalfViewDown()
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		chromeHeight := 5
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.refreshViewport()
		return m, nil

	case deltaMsg:
		// The final reply may land before the last queued delta; once the
		// channel reference is cleared the chunk is already part of the
		// appended assistant turn.
		if m.deltas == nil {
			return m, nil
		}
		m.pending += msg.chunk
		m.refreshViewport()
		return m, waitForDelta(m.deltas)

	case deltaDoneMsg:
		return m, nil

	case replyMsg:
		m.busy = false
		m.pending = ""
		m.deltas = nil
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
		}
		m.refreshViewport()
		return m, nil

	case searchMsg:
		m.busy = false
		if msg.err != nil {
			m.errText = friendlyError(msg.err)
		} else {
			m.results = renderSearchResults(m.style, msg.term, msg.entries, m.contentWidth())
		}
		m.refreshViewport()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return m, nil
	}
	if m.busy {
		m.errText = friendlyError(chatservice.ErrBusy)
		return m, nil
	}

	m.input.Reset()
	m.errText = ""

	if m.mode == modeSearch {
		m.busy = true
		return m, m.searchCmd(text)
	}

	m.busy = true
	m.refreshViewport()

	if m.streaming {
		ch := make(chan string, 16)
		m.deltas = ch
		return m, tea.Batch(m.submitStreamCmd(text, ch), waitForDelta(ch))
	}
	return m, m.submitCmd(text)
}

func (m Model) submitCmd(text string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		turn, err := ctrl.Submit(ctx, text)
		return replyMsg{turn: turn, err: err}
	}
}

func (m Model) submitStreamCmd(text string, ch chan string) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		turn, err := ctrl.SubmitStream(ctx, text, func(delta string) {
			ch <- delta
		})
		close(ch)
		return replyMsg{turn: turn, err: err}
	}
}

func waitForDelta(ch chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		delta, ok := <-ch
		if !ok {
			return deltaDoneMsg{}
		}
		return deltaMsg{chunk: delta}
	}
}

func (m Model) searchCmd(term string) tea.Cmd {
	ctx, searcher := m.ctx, m.searcher
	return func() tea.Msg {
		entries, err := searcher.Search(ctx, term)
		return searchMsg{term: term, entries: entries, err: err}
	}
}

func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	var content string
	if m.mode == modeSearch && m.results != "" {
		content = m.results
	} else {
		content = renderTranscript(m.style, m.companion, m.ctrl.Transcript().Context(), m.pending, m.busy, m.contentWidth())
	}
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m Model) contentWidth() int {
	if m.width <= 4 {
		return 76
	}
	return m.width - 2
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	modeLabel := "chat"
	if m.mode == modeSearch {
		modeLabel = "search"
	}
	title := m.style.Title.Render(fmt.Sprintf("foxden · %s", m.companion.Name)) +
		m.style.Status.Render(fmt.Sprintf("  [%s]", modeLabel))

	status := ""
	if m.busy && m.mode == modeChat && m.pending == "" {
		status = m.style.Status.Render(fmt.Sprintf("%s is thinking...", m.companion.Name))
	}
	if m.errText != "" {
		status = m.style.Error.Render(m.errText)
	}

	help := m.style.Help.Render("enter send · tab chat/search · ctrl+n new conversation · ctrl+c quit")

	return strings.Join([]string{
		title,
		m.viewport.View(),
		status,
		m.input.View(),
		help,
	}, "\n")
}

// renderTranscript lays out the conversation for the viewport. A pending
// streamed reply is shown under the companion label before its turn is
// appended.
func renderTranscript(style *Style, companion persona.Persona, turns []chat.Turn, pending string, busy bool, width int) string {
	var b strings.Builder

	if len(turns) == 0 {
		b.WriteString(style.CompanionLabel.Render(companion.Name+":") + "\n")
		b.WriteString(wordwrap.String(companion.OpeningLine, width) + "\n")
	}

	for _, turn := range turns {
		label := companion.Name
		labelStyle := style.CompanionLabel
		if turn.Role == chat.RoleUser {
			label = "You"
			labelStyle = style.UserLabel
		}
		b.WriteString(labelStyle.Render(label+":") + "\n")
		b.WriteString(wordwrap.String(turn.Content, width) + "\n\n")
	}

	if pending != "" {
		b.WriteString(style.CompanionLabel.Render(companion.Name+":") + "\n")
		b.WriteString(wordwrap.String(pending, width) + "\n")
	} else if busy {
		b.WriteString(style.Status.Render("...") + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// renderSearchResults lays out history matches the way the original app
// did: date, truncated question, truncated answer.
func renderSearchResults(style *Style, term string, entries []history.Entry, width int) string {
	if len(entries) == 0 {
		return fmt.Sprintf("no recorded exchanges match %q", term)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d recorded exchange(s) match %q:\n\n", len(entries), term)
	divider := style.Divider.Render(strings.Repeat("-", min(width, 50)))
	for _, entry := range entries {
		b.WriteString(divider + "\n")
		b.WriteString(style.SearchDate.Render(entry.CreatedAt.Format("2006-01-02 15:04:05")) + "\n")
		b.WriteString(wordwrap.String("Q: "+truncate(entry.Question, 100), width) + "\n")
		b.WriteString(wordwrap.String("A: "+truncate(entry.Answer, 200), width) + "\n\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// friendlyError maps error kinds onto short inline messages; the
// conversation stays usable after every one of them.
func friendlyError(err error) string {
	switch {
	case errors.Is(err, chatservice.ErrBusy):
		return "still waiting on the last reply"
	case errors.Is(err, chatservice.ErrEmptyMessage):
		return "type a message first"
	case errors.Is(err, ai.ErrProviderAuth):
		return "the provider rejected your credentials; check your API key"
	case errors.Is(err, ai.ErrProviderRateLimited):
		return "the provider is rate limiting; wait a moment and try again"
	case errors.Is(err, ai.ErrMalformedResponse):
		return "the provider sent back something unreadable"
	case errors.Is(err, ai.ErrProviderUnavailable):
		return "could not reach the provider"
	case errors.Is(err, history.ErrEmptyTerm):
		return "type a search term first"
	default:
		return err.Error()
	}
}
