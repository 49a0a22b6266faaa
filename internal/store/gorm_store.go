package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/jobdeck/jobdeck/internal/models"
	"github.com/jobdeck/jobdeck/internal/query"
)

// GormStore is the Postgres-backed JobStore.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Insert(ctx context.Context, job *models.Job) error {
	return s.db.WithContext(ctx).Create(job).Error
}

func (s *GormStore) Get(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	err := s.db.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (s *GormStore) Update(ctx context.Context, job *models.Job) error {
	return s.db.WithContext(ctx).Save(job).Error
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Job{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", models.ErrNotFound, id)
	}
	return nil
}

// Find translates the compiled query into SQL. Count and page are two
// separate statements; a write landing between them can skew total by one,
// which the listing contract accepts.
func (s *GormStore) Find(ctx context.Context, q query.Query) ([]models.Job, int64, error) {
	filtered := func() *gorm.DB {
		return applyFilters(s.db.WithContext(ctx).Model(&models.Job{}), q)
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx := filtered().Offset(q.Skip).Limit(q.Limit)
	if clause, ok := orderClause(q); ok {
		tx = tx.Order(clause)
	}

	var jobs []models.Job
	if err := tx.Find(&jobs).Error; err != nil {
		return nil, 0, err
	}
	return jobs, total, nil
}

func applyFilters(tx *gorm.DB, q query.Query) *gorm.DB {
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.Priority != "" {
		tx = tx.Where("priority = ?", q.Priority)
	}
	if q.Location != "" {
		tx = tx.Where("location ILIKE ?", likePattern(q.Location))
	}
	if q.Search != "" {
		pat := likePattern(q.Search)
		tx = tx.Where(
			"title ILIKE ? OR company ILIKE ? OR source ILIKE ? OR location ILIKE ? OR stage ILIKE ? OR details ILIKE ?",
			pat, pat, pat, pat, pat, pat,
		)
	}
	return tx
}

// sortColumns is the closed set of sortable columns. The legacy "content"
// sort key maps onto the canonical details column.
var sortColumns = map[string]string{
	"id":        "id",
	"title":     "title",
	"company":   "company",
	"status":    "status",
	"priority":  "priority",
	"stage":     "stage",
	"source":    "source",
	"location":  "location",
	"link":      "link",
	"details":   "details",
	"content":   "details",
	"createdAt": "created_at",
	"updatedAt": "updated_at",
}

// orderClause returns the ORDER BY expression for the compiled sort key.
// Unknown fields return ok=false and the page keeps the table's natural
// order, matching the permissive contract of the query compiler.
func orderClause(q query.Query) (string, bool) {
	col, ok := sortColumns[q.SortField]
	if !ok {
		return "", false
	}
	dir := "DESC"
	if q.SortAsc {
		dir = "ASC"
	}
	if col == "created_at" || col == "updated_at" {
		return col + " " + dir, true
	}
	return "LOWER(" + col + ") " + dir, true
}

// likePattern wraps a term for substring matching, escaping LIKE wildcards
// so user input matches literally.
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(term) + "%"
}
