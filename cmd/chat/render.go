package main

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/glamour"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"movie-bot/internal/model"
)

// sanitize normalizes text to NFC and drops control characters other than
// newlines and tabs so remote content cannot drive the terminal.
func sanitize(s string) string {
	t := transform.Chain(norm.NFC, runes.Remove(runes.Predicate(func(r rune) bool {
		return unicode.IsControl(r) && r != '\n' && r != '\t'
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// renderTranscript renders every message in order, tagged by role. pending is
// the reply being streamed, if any.
func renderTranscript(msgs []model.Message, pending string, r *glamour.TermRenderer, st styles) string {
	var b strings.Builder
	for _, m := range msgs {
		writeMessage(&b, m.Role, m.Content, r, st)
	}
	if pending != "" {
		writeMessage(&b, model.RoleAssistant, pending, nil, st)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeMessage(b *strings.Builder, role model.Role, content string, r *glamour.TermRenderer, st styles) {
	content = sanitize(content)

	if role == model.RoleUser {
		b.WriteString(st.UserTag.Render("You"))
		b.WriteString("\n")
		b.WriteString(st.UserText.Render(content))
		b.WriteString("\n\n")
		return
	}

	b.WriteString(st.BotTag.Render("MOVIE BOT"))
	b.WriteString("\n")
	if r != nil {
		if out, err := r.Render(content); err == nil {
			b.WriteString(strings.Trim(out, "\n"))
			b.WriteString("\n\n")
			return
		}
	}
	b.WriteString(st.UserText.Render(content))
	b.WriteString("\n\n")
}
