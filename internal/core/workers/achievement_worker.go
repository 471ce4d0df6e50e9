package workers

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/momentumlab/momentum-engine/internal/core/domain"
)

// AchievementChecker is the slice of the achievement service the worker
// needs. Each Check pass is synchronous, so runs never overlap.
type AchievementChecker interface {
	Check(ctx context.Context, userID string) ([]domain.Achievement, error)
}

type CheckJob struct {
	UserID string
}

// AchievementWorker runs achievement rechecks off the request path. Jobs
// are enqueued after every save; a ticker re-enqueues recently active
// users so time-based predicates (streak thresholds, dedication) fire
// without a user action.
type AchievementWorker struct {
	checker  AchievementChecker
	jobs     chan CheckJob
	interval time.Duration

	mu     sync.Mutex
	active map[string]time.Time
}

// activeWindow bounds how long a user stays on the periodic recheck list
// after their last save.
const activeWindow = 48 * time.Hour

func NewAchievementWorker(checker AchievementChecker, interval time.Duration) *AchievementWorker {
	return &AchievementWorker{
		checker:  checker,
		jobs:     make(chan CheckJob, 100),
		interval: interval,
		active:   make(map[string]time.Time),
	}
}

func (w *AchievementWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Achievement Worker started in background...")

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ticker.C:
				w.enqueueActive()
			case <-ctx.Done():
				log.Println("Achievement Worker shutting down...")
				return
			}
		}
	}()
}

func (w *AchievementWorker) Enqueue(userID string) {
	w.mu.Lock()
	w.active[userID] = time.Now()
	w.mu.Unlock()

	select {
	case w.jobs <- CheckJob{UserID: userID}:
	default:
		log.Printf("Achievement Worker queue full! Dropping job for user %s", userID)
	}
}

func (w *AchievementWorker) enqueueActive() {
	w.mu.Lock()
	cutoff := time.Now().Add(-activeWindow)
	users := make([]string, 0, len(w.active))
	for id, seen := range w.active {
		if seen.Before(cutoff) {
			delete(w.active, id)
			continue
		}
		users = append(users, id)
	}
	w.mu.Unlock()

	for _, id := range users {
		select {
		case w.jobs <- CheckJob{UserID: id}:
		default:
			return
		}
	}
}

func (w *AchievementWorker) processJob(ctx context.Context, job CheckJob) {
	newly, err := w.checker.Check(ctx, job.UserID)
	if err != nil {
		log.Printf("Worker Error checking achievements for %s: %v", job.UserID, err)
		return
	}

	for _, a := range newly {
		log.Printf("Achievement unlocked for %s: %s %s", job.UserID, a.Icon, a.Title)
	}
}
