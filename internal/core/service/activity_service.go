package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

// ActivityEnqueuer is the interface the service uses to hand records to the
// background workers.
type ActivityEnqueuer interface {
	Enqueue(a domain.Activity)
}

// activityService hands audit records to the dispatcher. Persistence happens
// on the worker goroutines; Record itself never blocks on the store.
type activityService struct {
	queue ActivityEnqueuer
	log   zerolog.Logger
}

// NewActivityService returns an ActivityService backed by queue.
func NewActivityService(queue ActivityEnqueuer, log zerolog.Logger) ports.ActivityService {
	return &activityService{queue: queue, log: log}
}

func (s *activityService) Record(_ context.Context, a domain.Activity) error {
	if a.ProjectID == "" || a.Action == "" {
		return domain.ErrInvalidInput
	}
	s.queue.Enqueue(a)
	return nil
}
