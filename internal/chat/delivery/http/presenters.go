package http

import (
	"errors"

	"movie-bot/internal/chat"
	"movie-bot/internal/filmography"
	"movie-bot/internal/model"
	"movie-bot/pkg/response"
)

// --- Request DTOs ---

type messageReq struct {
	SessionID string `json:"-"` // populated from URI param
	Text      string `json:"text" binding:"required,max=2000"`
}

func (r messageReq) toInput() chat.ReplyInput {
	return chat.ReplyInput{SessionID: r.SessionID, Text: r.Text}
}

// --- Response DTOs ---

type messageResp struct {
	Role      string            `json:"role"`
	Content   string            `json:"content"`
	CreatedAt response.DateTime `json:"created_at"`
}

func newMessageResp(m model.Message) messageResp {
	return messageResp{
		Role:      string(m.Role),
		Content:   m.Content,
		CreatedAt: response.DateTime(m.CreatedAt),
	}
}

func newMessageResps(msgs []model.Message) []messageResp {
	out := make([]messageResp, len(msgs))
	for i, m := range msgs {
		out[i] = newMessageResp(m)
	}
	return out
}

type sessionResp struct {
	ID        string            `json:"id"`
	CreatedAt response.DateTime `json:"created_at"`
	Messages  []messageResp     `json:"messages"`
}

func (h *handler) newSessionResp(out chat.SessionOutput) sessionResp {
	return sessionResp{
		ID:        out.ID,
		CreatedAt: response.DateTime(out.CreatedAt),
		Messages:  newMessageResps(out.Messages),
	}
}

type transcriptResp struct {
	SessionID string        `json:"session_id"`
	Messages  []messageResp `json:"messages"`
}

func (h *handler) newTranscriptResp(out chat.TranscriptOutput) transcriptResp {
	return transcriptResp{
		SessionID: out.SessionID,
		Messages:  newMessageResps(out.Messages),
	}
}

type replyResp struct {
	Actor    string        `json:"actor,omitempty"`
	Titles   []string      `json:"titles,omitempty"`
	Messages []messageResp `json:"messages"`
	Failure  string        `json:"failure,omitempty"`
}

func (h *handler) newReplyResp(out chat.ReplyOutput) replyResp {
	return replyResp{
		Actor:    out.Actor,
		Titles:   out.Titles,
		Messages: newMessageResps(out.Messages),
		Failure:  failureCode(out.Failure),
	}
}

// failureCode names a turn failure for API clients.
func failureCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, filmography.ErrActorNotFound):
		return "actor_not_found"
	case errors.Is(err, filmography.ErrServiceUnavailable):
		return "service_unavailable"
	case errors.Is(err, chat.ErrChatUnavailable):
		return "chat_unavailable"
	default:
		return "unknown"
	}
}
