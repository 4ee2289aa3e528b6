package http

import "github.com/gin-gonic/gin"

// RegisterWebRoutes maps the chat page.
func RegisterWebRoutes(r gin.IRoutes, h Handler) {
	r.GET("/", h.Home)
	r.POST("/", h.Submit)
}

// RegisterRoutes maps the JSON API under rg, e.g. /api/v1.
func RegisterRoutes(rg *gin.RouterGroup, h Handler) {
	sessions := rg.Group("/sessions")
	{
		sessions.POST("", h.CreateSession)
		sessions.DELETE("/:id", h.DeleteSession)
		sessions.GET("/:id/messages", h.GetMessages)
		sessions.POST("/:id/messages", h.PostMessage)
		sessions.POST("/:id/messages/stream", h.StreamMessage)
	}
}
