// Package store holds the Job record store boundary: a gorm/Postgres backend
// for production and an in-memory backend that doubles as the reference
// semantics in tests.
package store

import (
	"context"

	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/query"
)

// JobStore is the persistence boundary for Job records. Find runs the
// compiled query twice over the collection (once for the total count, once
// for the skip/take/sorted page) with no isolation between the two reads.
type JobStore interface {
	Insert(ctx context.Context, job *models.Job) error
	Get(ctx context.Context, id string) (*models.Job, error)
	Update(ctx context.Context, job *models.Job) error
	Delete(ctx context.Context, id string) error
	Find(ctx context.Context, q query.Query) ([]models.Job, int64, error)
}
