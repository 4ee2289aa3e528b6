package http

import (
	"github.com/gin-gonic/gin"

	"movie-bot/pkg/response"
)

// SSE event names.
const (
	eventMessage = "message" // a message appended before streaming
	eventChunk   = "chunk"   // a piece of the chat model reply
	eventDone    = "done"    // the final appended message and failure, if any
)

type chunkEvent struct {
	Text string `json:"text"`
}

type doneEvent struct {
	Message *messageResp `json:"message,omitempty"`
	Failure string       `json:"failure,omitempty"`
}

// StreamMessage godoc
// @Summary     Send a message and stream the reply
// @Description Runs one turn and streams the chat model reply as Server-Sent Events: "message" for each message appended before the reply, "chunk" for reply text and a final "done".
// @Tags        Chat
// @Accept      json
// @Produce     text/event-stream
// @Param       id   path string     true "Session ID"
// @Param       body body messageReq true "User input"
// @Success     200 {string} string "event stream"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     409 {object} response.Resp "Conflict - turn in progress"
// @Router      /api/v1/sessions/{id}/messages/stream [POST]
func (h *handler) StreamMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	stream, err := h.uc.ReplyStream(ctx, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.ReplyStream: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}
	defer stream.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	for _, m := range stream.Prelude {
		c.SSEvent(eventMessage, newMessageResp(m))
	}
	c.Writer.Flush()

	for ctx.Err() == nil && stream.Next() {
		c.SSEvent(eventChunk, chunkEvent{Text: stream.Chunk()})
		c.Writer.Flush()
	}

	stream.Close()
	done := doneEvent{Failure: failureCode(stream.Failure())}
	if final := stream.Final(); final.Content != "" {
		m := newMessageResp(final)
		done.Message = &m
	}
	c.SSEvent(eventDone, done)
	c.Writer.Flush()
}
