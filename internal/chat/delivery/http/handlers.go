package http

import (
	"github.com/gin-gonic/gin"

	"movie-bot/pkg/response"
)

// CreateSession godoc
// @Summary     Start a chat session
// @Description Creates a session seeded with the bot greeting.
// @Tags        Chat
// @Produce     json
// @Success     200 {object} sessionResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sessions [POST]
func (h *handler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	output, err := h.uc.StartSession(ctx)
	if err != nil {
		h.l.Errorf(ctx, "uc.StartSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSessionResp(output))
}

// GetMessages godoc
// @Summary     Get the transcript
// @Description Returns every message of the session in order.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} transcriptResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id}/messages [GET]
func (h *handler) GetMessages(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Transcript(ctx, id)
	if err != nil {
		h.l.Warnf(ctx, "uc.Transcript: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newTranscriptResp(output))
}

// PostMessage godoc
// @Summary     Send a message
// @Description Runs one turn: looks up the actor named in the text, lists their movies and asks the chat model for recommendations. Lookup and model failures are reported in the appended messages and the failure field.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "User input"
// @Success     200 {object} replyResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - turn in progress"
// @Router      /api/v1/sessions/{id}/messages [POST]
func (h *handler) PostMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.Reply(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Reply: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newReplyResp(output))
}

// DeleteSession godoc
// @Summary     End a session
// @Description Discards the session and its transcript.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/sessions/{id} [DELETE]
func (h *handler) DeleteSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.EndSession(ctx, id); err != nil {
		h.l.Warnf(ctx, "uc.EndSession: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}
