package main

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"movie-bot/internal/chat"
	"movie-bot/internal/model"
)

const (
	headerHeight = 2
	footerHeight = 3
	defaultWidth = 80
)

// Messages exchanged between commands and Update.
type (
	transcriptMsg struct {
		messages []model.Message
		err      error
	}
	streamStartedMsg struct {
		stream *chat.TurnStream
		err    error
	}
	chunkMsg      struct{ text string }
	streamDoneMsg struct{ failure error }
	replyDoneMsg  struct{ err error }
)

// chatModel is the bubbletea model of the terminal presentation loop.
type chatModel struct {
	ctx       context.Context
	uc        chat.UseCase
	sessionID string
	streaming bool

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer
	styles   styles

	transcript []model.Message
	pending    strings.Builder
	stream     *chat.TurnStream
	busy       bool
	err        error
	width      int
}

func newChatModel(ctx context.Context, uc chat.UseCase, sessionID string, streaming bool) *chatModel {
	st := defaultStyles()

	ti := textinput.New()
	ti.Placeholder = "Name an actor, e.g. I love Brad Pitt movies (Enter to send, Esc to quit)"
	ti.Prompt = "│ "
	ti.PromptStyle = st.Prompt
	ti.CharLimit = 2000
	ti.Width = defaultWidth - 4
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	return &chatModel{
		ctx:       ctx,
		uc:        uc,
		sessionID: sessionID,
		streaming: streaming,
		input:     ti,
		viewport:  viewport.New(defaultWidth, 20),
		spinner:   sp,
		renderer:  newRenderer(defaultWidth),
		styles:    st,
		width:     defaultWidth,
	}
}

func newRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return nil
	}
	return r
}

func (m *chatModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadTranscript())
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 3)
		m.input.Width = max(msg.Width-4, 10)
		m.renderer = newRenderer(msg.Width)
		m.refresh()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			if m.stream != nil {
				// A pending nextChunk finishes the stream on its own goroutine.
				m.stream.Close()
			}
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			text := m.input.Value()
			if strings.TrimSpace(text) == "" {
				return m, nil
			}
			m.input.Reset()
			m.busy = true
			m.err = nil
			return m, tea.Batch(m.spinner.Tick, m.submit(text))
		}

	case transcriptMsg:
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.transcript = msg.messages
		}
		m.refresh()
		return m, nil

	case replyDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.err = msg.err
		}
		return m, m.loadTranscript()

	case streamStartedMsg:
		if msg.err != nil {
			m.busy = false
			m.err = msg.err
			return m, m.loadTranscript()
		}
		m.stream = msg.stream
		m.pending.Reset()
		m.transcript = append(m.transcript, msg.stream.Prelude...)
		m.refresh()
		return m, m.nextChunk()

	case chunkMsg:
		m.pending.WriteString(msg.text)
		m.refresh()
		return m, m.nextChunk()

	case streamDoneMsg:
		m.stream = nil
		m.pending.Reset()
		m.busy = false
		return m, m.loadTranscript()

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *chatModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("MOVIE BOT"))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.Error.Render("error: " + m.err.Error()))
	case m.busy:
		b.WriteString(m.spinner.View() + m.styles.Help.Render(" thinking..."))
	default:
		b.WriteString(m.styles.Separator.Render(strings.Repeat("─", max(m.width, 1))))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return b.String()
}

// refresh re-renders the transcript into the viewport and scrolls to the end.
func (m *chatModel) refresh() {
	m.viewport.SetContent(renderTranscript(m.transcript, m.pending.String(), m.renderer, m.styles))
	m.viewport.GotoBottom()
}

func (m *chatModel) loadTranscript() tea.Cmd {
	return func() tea.Msg {
		out, err := m.uc.Transcript(m.ctx, m.sessionID)
		return transcriptMsg{messages: out.Messages, err: err}
	}
}

func (m *chatModel) submit(text string) tea.Cmd {
	input := chat.ReplyInput{SessionID: m.sessionID, Text: text}
	if !m.streaming {
		return func() tea.Msg {
			_, err := m.uc.Reply(m.ctx, input)
			return replyDoneMsg{err: err}
		}
	}
	return func() tea.Msg {
		stream, err := m.uc.ReplyStream(m.ctx, input)
		return streamStartedMsg{stream: stream, err: err}
	}
}

// nextChunk pulls one chunk. Chunks are pulled one command at a time so the
// stream is never read concurrently.
func (m *chatModel) nextChunk() tea.Cmd {
	stream := m.stream
	return func() tea.Msg {
		if stream.Next() {
			return chunkMsg{text: stream.Chunk()}
		}
		stream.Close()
		return streamDoneMsg{failure: stream.Failure()}
	}
}
