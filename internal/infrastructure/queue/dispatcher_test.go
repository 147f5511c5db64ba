package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/brc-dashboard/dashboard-api/internal/core/domain"
)

// recordingRepo collects inserted activities.
type recordingRepo struct {
	mu       sync.Mutex
	inserted []domain.Activity
}

func (r *recordingRepo) Insert(_ context.Context, a *domain.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.inserted = append(r.inserted, *a)
	return nil
}

func (r *recordingRepo) snapshot() []domain.Activity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Activity, len(r.inserted))
	copy(out, r.inserted)
	return out
}

func waitForInserts(t *testing.T, repo *recordingRepo, want int) []domain.Activity {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		got := repo.snapshot()
		if len(got) >= want {
			return got
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d inserts, have %d", want, len(repo.snapshot()))
	return nil
}

func TestDispatcher_PersistsEnqueuedActivities(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.Activity{ProjectID: "p1", Action: domain.ActivityAssigned})
	d.Enqueue(domain.Activity{ProjectID: "p2", Action: domain.ActivityDeleted})

	got := waitForInserts(t, repo, 2)
	actions := map[string]bool{}
	for _, a := range got {
		actions[a.Action] = true
	}
	if !actions[domain.ActivityAssigned] || !actions[domain.ActivityDeleted] {
		t.Fatalf("missing activities: %+v", got)
	}
}

func TestDispatcher_SameProjectKeepsOrder(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDispatcher(4, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	details := []string{"first", "second", "third", "fourth"}
	for _, detail := range details {
		d.Enqueue(domain.Activity{ProjectID: "p1", Action: domain.ActivityUpdated, Detail: detail})
	}

	got := waitForInserts(t, repo, len(details))
	for i, a := range got {
		if a.Detail != details[i] {
			t.Fatalf("order broken at %d: %+v", i, got)
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, &recordingRepo{}, zerolog.Nop())

	first := d.shardIndex("p1")
	for i := 0; i < 100; i++ {
		if d.shardIndex("p1") != first {
			t.Fatalf("shard index must be stable for a given project id")
		}
	}
	if first < 0 || first >= 8 {
		t.Fatalf("shard index out of range: %d", first)
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingRepo{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}
