package http

import (
	"errors"
	"net/http"

	"movie-bot/internal/chat"
	"movie-bot/internal/session"
	pkgErrors "movie-bot/pkg/errors"
)

var (
	errSessionNotFound = pkgErrors.NewHTTPError(http.StatusNotFound, "session not found")
	errTurnInProgress  = pkgErrors.NewHTTPError(http.StatusConflict, "a reply is already being generated for this session")
	errEmptyInput      = pkgErrors.NewHTTPError(http.StatusBadRequest, "text is required")
)

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, chat.ErrSessionNotFound):
		return errSessionNotFound
	case errors.Is(err, session.ErrTurnInProgress):
		return errTurnInProgress
	case errors.Is(err, chat.ErrEmptyInput):
		return errEmptyInput
	default:
		return pkgErrors.ErrInternalServerError
	}
}
