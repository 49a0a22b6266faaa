package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/jobdeck/jobdeck/internal/cache"
	"github.com/jobdeck/jobdeck/internal/dtos"
	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/query"
	"github.com/jobdeck/jobdeck/internal/store"
)

// JobService owns listing and mutation of Job records. Mutations are
// single-record and last-write-wins; there is no optimistic locking.
type JobService struct {
	Store store.JobStore
	Cache *cache.ListingCache
}

func NewJobService(st store.JobStore, c *cache.ListingCache) *JobService {
	return &JobService{Store: st, Cache: c}
}

// List compiles the raw parameters and returns a page envelope. No matches is
// an empty page, never an error.
func (s *JobService) List(ctx context.Context, p query.Params) (*dtos.ListResponse, error) {
	q := query.Compile(p)

	if resp, ok := s.Cache.Get(ctx, q); ok {
		return resp, nil
	}

	items, total, err := s.Store.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Job{}
	}

	resp := &dtos.ListResponse{Items: items, Total: total, Page: q.Page, Limit: q.Limit}
	s.Cache.Set(ctx, q, resp)
	return resp, nil
}

// GetByID returns the record or models.ErrNotFound.
func (s *JobService) GetByID(ctx context.Context, id string) (*models.Job, error) {
	return s.Store.Get(ctx, id)
}

// Create validates the title, fills defaults and applies the details/content
// mirror rule, then stores the record.
func (s *JobService) Create(ctx context.Context, req *dtos.CreateJobRequest) (*models.Job, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	job := &models.Job{
		Title:    title,
		Company:  strings.TrimSpace(req.Company),
		Status:   models.StatusSaved,
		Priority: models.PriorityMed,
		Stage:    strings.TrimSpace(req.Stage),
		Source:   strings.TrimSpace(req.Source),
		Location: strings.TrimSpace(req.Location),
		Link:     strings.TrimSpace(req.Link),
	}
	if req.Status != "" {
		job.Status = req.Status
	}
	if req.Priority != "" {
		job.Priority = req.Priority
	}

	// Mirror rule: content is the later-written alias, so it wins when both
	// notes keys arrive in one request.
	switch {
	case req.Content != nil:
		job.Details = strings.TrimSpace(*req.Content)
	case req.Details != nil:
		job.Details = strings.TrimSpace(*req.Details)
	}

	if !models.ValidStatus(job.Status) {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, job.Status)
	}
	if !models.ValidPriority(job.Priority) {
		return nil, fmt.Errorf("%w: unknown priority %q", models.ErrValidation, job.Priority)
	}

	if err := s.Store.Insert(ctx, job); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return job, nil
}

// Update applies a whitelisted partial patch. Absent fields stay untouched;
// string values are trimmed; the notes mirror rule uses only the keys present
// in this patch.
func (s *JobService) Update(ctx context.Context, id string, patch *dtos.JobPatch) (*models.Job, error) {
	job, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		t := strings.TrimSpace(*patch.Title)
		if t == "" {
			return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
		}
		job.Title = t
	}
	if patch.Company != nil {
		job.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.Status != nil {
		if !models.ValidStatus(*patch.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", models.ErrValidation, *patch.Status)
		}
		job.Status = *patch.Status
	}
	if patch.Priority != nil {
		if !models.ValidPriority(*patch.Priority) {
			return nil, fmt.Errorf("%w: unknown priority %q", models.ErrValidation, *patch.Priority)
		}
		job.Priority = *patch.Priority
	}
	if patch.Stage != nil {
		job.Stage = strings.TrimSpace(*patch.Stage)
	}
	if patch.Source != nil {
		job.Source = strings.TrimSpace(*patch.Source)
	}
	if patch.Location != nil {
		job.Location = strings.TrimSpace(*patch.Location)
	}
	if patch.Link != nil {
		job.Link = strings.TrimSpace(*patch.Link)
	}
	switch {
	case patch.Content != nil:
		job.Details = strings.TrimSpace(*patch.Content)
	case patch.Details != nil:
		job.Details = strings.TrimSpace(*patch.Details)
	}

	if err := s.Store.Update(ctx, job); err != nil {
		return nil, err
	}
	s.Cache.Invalidate(ctx)
	return job, nil
}

// Delete removes the record, irreversibly.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if err := s.Store.Delete(ctx, id); err != nil {
		return err
	}
	s.Cache.Invalidate(ctx)
	return nil
}
