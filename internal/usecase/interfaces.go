package usecase

import (
	"context"
	"io"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

type LeadRepositoryInterface = entity.LeadRepositoryInterface

type FileStore interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

// Notifier delivers a best-effort message. Implementations may queue or drop it.
type Notifier interface {
	Notify(ctx context.Context, to, subject, body string) error
}
