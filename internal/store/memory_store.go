package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/query"
)

// MemoryStore is an in-memory JobStore. It applies the compiled query's
// Match/Less directly, so it is both the test double and the reference for
// what the SQL translation must do. Natural order is insertion order.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  map[string]models.Job
	order []string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]models.Job)}
}

func (s *MemoryStore) Insert(ctx context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	now := time.Now()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	s.jobs[job.ID] = *job
	s.order = append(s.order, job.ID)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	return &job, nil
}

func (s *MemoryStore) Update(ctx context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.ID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrNotFound, job.ID)
	}
	job.UpdatedAt = time.Now()
	s.jobs[job.ID] = *job
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[id]; !ok {
		return fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	delete(s.jobs, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryStore) Find(ctx context.Context, q query.Query) ([]models.Job, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Job
	for _, id := range s.order {
		if job := s.jobs[id]; q.Match(job) {
			matched = append(matched, job)
		}
	}
	total := int64(len(matched))

	// Stable sort keeps insertion order for ties and unknown sort fields.
	sort.SliceStable(matched, func(i, j int) bool {
		return q.Less(matched[i], matched[j])
	})

	if q.Skip >= len(matched) {
		return []models.Job{}, total, nil
	}
	matched = matched[q.Skip:]
	if len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, total, nil
}
