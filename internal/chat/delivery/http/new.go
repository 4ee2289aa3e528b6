package http

import (
	"html/template"

	"github.com/gin-gonic/gin"

	"movie-bot/internal/chat"
	"movie-bot/pkg/log"
)

// Handler is the public interface for the chat HTTP delivery layer.
type Handler interface {
	// Web UI
	Home(c *gin.Context)
	Submit(c *gin.Context)

	// JSON API
	CreateSession(c *gin.Context)
	GetMessages(c *gin.Context)
	PostMessage(c *gin.Context)
	StreamMessage(c *gin.Context)
	DeleteSession(c *gin.Context)
}

type handler struct {
	l    log.Logger
	uc   chat.UseCase
	tmpl *template.Template
}

// New creates a new HTTP handler for the chat domain.
func New(l log.Logger, uc chat.UseCase) Handler {
	return &handler{
		l:    l,
		uc:   uc,
		tmpl: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}
