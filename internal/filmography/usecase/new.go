package usecase

import (
	"movie-bot/internal/filmography"
	"movie-bot/internal/filmography/repository"
	pkgLog "movie-bot/pkg/log"
)

type implUseCase struct {
	l    pkgLog.Logger
	repo repository.MetadataRepository
}

// New creates a new filmography UseCase instance.
func New(l pkgLog.Logger, repo repository.MetadataRepository) filmography.UseCase {
	return &implUseCase{
		l:    l,
		repo: repo,
	}
}
