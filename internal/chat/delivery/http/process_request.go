package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "movie-bot/pkg/errors"
)

// processSessionID reads the session id URI param.
func (h *handler) processSessionID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")
	}
	return id, nil
}

// processMessageReq binds the message body and the session id URI param.
func (h *handler) processMessageReq(c *gin.Context) (messageReq, error) {
	var req messageReq
	id, err := h.processSessionID(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	req.SessionID = id
	return req, nil
}
