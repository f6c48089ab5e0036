package activity

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Recorder journals remote operations. Implementations must not fail the caller.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

type Service interface {
	Recorder
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
	Enabled() bool
}

type service struct {
	repo    Repository
	logger  *zap.Logger
	timeout time.Duration
}

// NewService creates a Service that writes entries through repo.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{
		repo:    repo,
		logger:  logger,
		timeout: 2 * time.Second,
	}
}

func (s *service) Record(ctx context.Context, e Entry) {
	// Detached from the request so a client disconnect doesn't drop the entry.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	if err := s.repo.Create(ctx, &e); err != nil {
		s.logger.Warn("failed to record activity",
			zap.String("action", string(e.Action)),
			zap.String("target", e.Target),
			zap.Error(err),
		)
	}
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	if filter.Action != "" && !filter.Action.Valid() {
		return nil, 0, ErrInvalidFilter
	}
	return s.repo.List(ctx, filter)
}

func (s *service) Enabled() bool { return true }

type nopService struct{}

// NewNopService returns a Service that drops every entry. Used when no database is configured.
func NewNopService() Service {
	return nopService{}
}

func (nopService) Record(context.Context, Entry) {}

func (nopService) List(context.Context, Filter) ([]*Entry, int, error) {
	return nil, 0, ErrJournalUnavailable
}

func (nopService) Enabled() bool { return false }
