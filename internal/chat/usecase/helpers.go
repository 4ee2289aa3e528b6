package usecase

import (
	"errors"
	"fmt"
	"strings"

	"movie-bot/internal/filmography"
	"movie-bot/internal/model"
	"movie-bot/pkg/llmprovider"
)

// formatFilmography renders the assistant block listing the titles.
func formatFilmography(name string, titles []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Movies featuring %s:\n", name)
	for _, title := range titles {
		fmt.Fprintf(&b, "- %s\n", title)
	}
	return b.String()
}

// lookupFailureMessage returns the assistant message reporting a failed lookup.
func lookupFailureMessage(err error) string {
	var svcErr *filmography.ServiceError
	switch {
	case errors.As(err, &svcErr) && svcErr.Step == filmography.StepCredits:
		return MsgCreditsFailed
	case errors.Is(err, filmography.ErrServiceUnavailable):
		return MsgSearchFailed
	default:
		return MsgActorNotFound
	}
}

func (uc *implUseCase) buildRequest(messages []model.Message) *llmprovider.Request {
	req := &llmprovider.Request{
		SystemInstruction: uc.cfg.SystemPrompt,
		Messages:          make([]llmprovider.Message, len(messages)),
		Temperature:       uc.cfg.Temperature,
		MaxTokens:         uc.cfg.MaxTokens,
	}
	for i, m := range messages {
		req.Messages[i] = llmprovider.Message{Role: string(m.Role), Content: m.Content}
	}
	return req
}
