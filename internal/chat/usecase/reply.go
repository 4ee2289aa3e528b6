package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-bot/internal/chat"
	"movie-bot/internal/filmography"
	"movie-bot/internal/model"
	"movie-bot/internal/session"
	"movie-bot/pkg/actorname"
	pkgLog "movie-bot/pkg/log"
)

// turn is the state of one input event up to the chat-model call.
type turn struct {
	ctx      context.Context
	session  *session.Session
	actor    string
	titles   []string
	appended []model.Message
	failure  error
}

func (t *turn) append(msg model.Message) {
	t.session.Append(msg)
	t.appended = append(t.appended, msg)
}

func (t *turn) output() chat.ReplyOutput {
	return chat.ReplyOutput{
		Actor:    t.actor,
		Titles:   t.titles,
		Messages: t.appended,
		Failure:  t.failure,
	}
}

// Reply runs one full turn: record the input, look up the named actor, list
// their movies, ask for a mood and forward the session to the chat model.
func (uc *implUseCase) Reply(ctx context.Context, input chat.ReplyInput) (chat.ReplyOutput, error) {
	t, err := uc.beginTurn(ctx, input)
	if err != nil {
		return chat.ReplyOutput{}, err
	}
	defer t.session.EndTurn()

	if t.failure != nil {
		return t.output(), nil
	}

	resp, err := uc.llm.GenerateContent(t.ctx, uc.buildRequest(t.session.All()))
	if err != nil {
		uc.l.Errorf(t.ctx, "chat.usecase.Reply: llm.GenerateContent: %v", err)
		t.append(model.NewAssistantMessage(MsgChatFailed))
		t.failure = fmt.Errorf("%w: %v", chat.ErrChatUnavailable, err)
		return t.output(), nil
	}

	t.append(model.NewAssistantMessage(resp.Content))
	uc.l.Infof(t.ctx, "chat.usecase.Reply: provider=%s messages=%d", resp.ProviderName, t.session.Len())
	return t.output(), nil
}

// ReplyStream runs the same turn as Reply but streams the chat model reply.
func (uc *implUseCase) ReplyStream(ctx context.Context, input chat.ReplyInput) (*chat.TurnStream, error) {
	t, err := uc.beginTurn(ctx, input)
	if err != nil {
		return nil, err
	}

	if t.failure != nil {
		t.session.EndTurn()
		return chat.NewTurnStream(t.appended, nil, nil, nil, t.failure), nil
	}

	streamCtx, cancel := context.WithCancel(t.ctx)
	src, err := uc.llm.StreamContent(streamCtx, uc.buildRequest(t.session.All()))
	if err != nil {
		cancel()
		uc.l.Errorf(t.ctx, "chat.usecase.ReplyStream: llm.StreamContent: %v", err)
		t.append(model.NewAssistantMessage(MsgChatFailed))
		t.session.EndTurn()
		return chat.NewTurnStream(t.appended, nil, nil, nil, fmt.Errorf("%w: %v", chat.ErrChatUnavailable, err)), nil
	}

	prelude := t.appended
	finish := func(text string, streamErr error, closedEarly bool) (model.Message, error) {
		defer t.session.EndTurn()

		var failure error
		msg := model.NewAssistantMessage(text)
		switch {
		case streamErr != nil:
			uc.l.Errorf(t.ctx, "chat.usecase.ReplyStream: stream: %v", streamErr)
			msg = model.NewAssistantMessage(MsgChatFailed)
			failure = fmt.Errorf("%w: %v", chat.ErrChatUnavailable, streamErr)
		case text == "":
			uc.l.Warnf(t.ctx, "chat.usecase.ReplyStream: empty reply closed_early=%t", closedEarly)
			msg = model.NewAssistantMessage(MsgChatFailed)
			failure = fmt.Errorf("%w: empty reply", chat.ErrChatUnavailable)
		}

		t.session.Append(msg)
		uc.l.Infof(t.ctx, "chat.usecase.ReplyStream: finished closed_early=%t messages=%d", closedEarly, t.session.Len())
		return msg, failure
	}

	return chat.NewTurnStream(prelude, src, cancel, finish, nil), nil
}

// beginTurn validates the input, claims the session turn and runs every step
// up to the chat-model call. On error the session is left untouched.
func (uc *implUseCase) beginTurn(ctx context.Context, input chat.ReplyInput) (*turn, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, chat.ErrEmptyInput
	}

	s, err := uc.getSession(input.SessionID)
	if err != nil {
		return nil, err
	}
	if err := s.BeginTurn(); err != nil {
		return nil, err
	}

	t := &turn{ctx: pkgLog.WithSessionID(ctx, s.ID()), session: s}
	t.append(model.NewUserMessage(input.Text))

	name, _ := actorname.Extract(input.Text)
	t.actor = name

	film, err := uc.filmography.Lookup(t.ctx, filmography.LookupInput{Name: name})
	if err != nil {
		uc.l.Warnf(t.ctx, "chat.usecase.beginTurn: filmography.Lookup name=%q: %v", name, err)
		t.append(model.NewAssistantMessage(lookupFailureMessage(err)))
		t.failure = err
		return t, nil
	}

	t.titles = film.Titles
	t.append(model.NewAssistantMessage(formatFilmography(name, film.Titles)))
	t.append(model.NewAssistantMessage(uc.cfg.MoodPrompt))
	return t, nil
}
