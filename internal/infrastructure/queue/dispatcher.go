package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
	"github.com/brc-dashboard/dashboard-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// Dispatcher routes audit activities to a fixed set of workers using
// consistent hashing on the project id, so records for the same project are
// persisted in the order they were produced.
type Dispatcher struct {
	workers []chan domain.Activity
	repo    ports.ActivityRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ActivityRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Activity, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Activity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// activities still queued at that point are dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an activity to the worker responsible for its project.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(a domain.Activity) {
	d.workers[d.shardIndex(a.ProjectID)] <- a
}

// shardIndex maps a project id deterministically to a worker index.
func (d *Dispatcher) shardIndex(projectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(projectID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Activity) {
	for {
		select {
		case <-ctx.Done():
			return
		case a, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.Insert(ctx, &a); err != nil {
				d.log.Error().Err(err).
					Str("project_id", a.ProjectID).
					Str("action", a.Action).
					Int("worker_id", id).
					Msg("activity insert failed")
			}
		}
	}
}
