package http

import (
	"context"
	"embed"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"movie-bot/internal/chat"
	"movie-bot/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	sessionCookie    = "movie_bot_session"
	sessionCookieAge = 24 * 60 * 60
)

type pageData struct {
	Messages []model.Message
	Notice   string
}

// Home renders the transcript of the session bound to the cookie, starting a
// new session when there is none.
func (h *handler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	transcript, err := h.currentTranscript(ctx, c)
	if err != nil {
		h.l.Errorf(ctx, "chat.http.Home: %v", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	data := pageData{Messages: transcript.Messages}
	if c.Query("busy") != "" {
		data.Notice = "Still working on your last message."
	}
	c.Render(http.StatusOK, render.HTML{Template: h.tmpl, Name: "index.html", Data: data})
}

// Submit runs one turn for the form input and redirects back to the page.
func (h *handler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	transcript, err := h.currentTranscript(ctx, c)
	if err != nil {
		h.l.Errorf(ctx, "chat.http.Submit: %v", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	location := "/"
	_, err = h.uc.Reply(ctx, chat.ReplyInput{SessionID: transcript.SessionID, Text: c.PostForm("text")})
	switch {
	case err == nil, errors.Is(err, chat.ErrEmptyInput):
	case errors.Is(h.mapError(err), errTurnInProgress):
		location = "/?busy=1"
	case errors.Is(err, chat.ErrSessionNotFound):
		// Expired between load and reply; Home binds a fresh session.
		h.l.Warnf(ctx, "chat.http.Submit: session %s expired before reply", transcript.SessionID)
	default:
		h.l.Errorf(ctx, "chat.http.Submit: uc.Reply: %v", err)
		c.String(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}

	c.Redirect(http.StatusSeeOther, location)
}

// currentTranscript loads the cookie-bound session, creating and binding a
// new one when the cookie is missing or the session expired.
func (h *handler) currentTranscript(ctx context.Context, c *gin.Context) (chat.TranscriptOutput, error) {
	if id, err := c.Cookie(sessionCookie); err == nil && id != "" {
		transcript, err := h.uc.Transcript(ctx, id)
		if err == nil {
			return transcript, nil
		}
		if !errors.Is(err, chat.ErrSessionNotFound) {
			return chat.TranscriptOutput{}, err
		}
	}

	sess, err := h.uc.StartSession(ctx)
	if err != nil {
		return chat.TranscriptOutput{}, err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, sess.ID, sessionCookieAge, "/", "", false, true)

	return h.uc.Transcript(ctx, sess.ID)
}
