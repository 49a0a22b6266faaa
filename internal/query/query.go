// Package query compiles the listing endpoint's filter/sort/pagination
// parameters into a store-agnostic query. The same compiled Query drives both
// the SQL translation in the gorm store and the in-memory predicate scan, so
// the two backends cannot drift apart on semantics.
package query

import (
	"strconv"
	"strings"
	"time"

	"github.com/jobdeck/jobdeck/internal/models"
)

const (
	DefaultLimit = 100
	MaxLimit     = 200

	DefaultSortField = "updatedAt"
)

// Params are the raw request parameters, all optional. Everything arrives as
// a string; Compile owns the coercion and clamping rules.
type Params struct {
	Search   string
	Status   string
	Priority string
	Location string
	Sort     string
	Page     string
	Limit    string
}

// Query is the compiled form: equality/substring filters, a sort key and
// skip/take derived from page/limit.
type Query struct {
	Search   string
	Status   string
	Priority string
	Location string

	SortField string
	SortAsc   bool

	Page  int
	Limit int
	Skip  int
}

// Compile never fails: unparseable page/limit fall back to defaults, the sort
// field is taken verbatim (unknown fields sort nothing, they don't error) and
// enum filters are not checked for membership, so an invalid status simply
// matches no records.
func Compile(p Params) Query {
	q := Query{
		Search:    strings.TrimSpace(p.Search),
		Status:    p.Status,
		Priority:  p.Priority,
		Location:  p.Location,
		SortField: DefaultSortField,
		SortAsc:   false,
	}

	// "field:dir" with any field accepted; dir is desc unless exactly "asc".
	// A sort value without a colon keeps the default, same as no sort at all.
	if field, dir, ok := strings.Cut(p.Sort, ":"); ok {
		q.SortField = field
		q.SortAsc = dir == "asc"
	}

	q.Page = atoiOr(p.Page, 1)
	if q.Page < 1 {
		q.Page = 1
	}

	q.Limit = atoiOr(p.Limit, DefaultLimit)
	if q.Limit < 1 {
		q.Limit = 1
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}

	q.Skip = (q.Page - 1) * q.Limit
	return q
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}

// searchFields are the fields the server-side search matches against. Note
// the notes field is included here, unlike the client's narrower re-filter.
func searchFields(j models.Job) []string {
	return []string{j.Title, j.Company, j.Source, j.Location, j.Stage, j.Details}
}

// Match is the compiled predicate: equality filters and the search OR-group
// are ANDed together, all substring matches are case-insensitive.
func (q Query) Match(j models.Job) bool {
	if q.Status != "" && j.Status != q.Status {
		return false
	}
	if q.Priority != "" && j.Priority != q.Priority {
		return false
	}
	if q.Location != "" && !containsFold(j.Location, q.Location) {
		return false
	}
	if q.Search != "" {
		hit := false
		for _, f := range searchFields(j) {
			if containsFold(f, q.Search) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	return true
}

// stringKeys maps sortable field names to accessors. Date fields are handled
// separately in Less; anything not listed here sorts nothing at all, which
// preserves the store's natural order for unrecognized sort keys.
var stringKeys = map[string]func(models.Job) string{
	"id":       func(j models.Job) string { return j.ID },
	"title":    func(j models.Job) string { return j.Title },
	"company":  func(j models.Job) string { return j.Company },
	"status":   func(j models.Job) string { return j.Status },
	"priority": func(j models.Job) string { return j.Priority },
	"stage":    func(j models.Job) string { return j.Stage },
	"source":   func(j models.Job) string { return j.Source },
	"location": func(j models.Job) string { return j.Location },
	"link":     func(j models.Job) string { return j.Link },
	"details":  func(j models.Job) string { return j.Details },
	"content":  func(j models.Job) string { return j.Details },
}

// Less is the compiled comparator. Date fields compare as instants (the zero
// time sorts like epoch), everything else as case-folded strings. Ties and
// unknown sort fields report false both ways, leaving natural order intact.
func (q Query) Less(a, b models.Job) bool {
	switch q.SortField {
	case "updatedAt":
		return lessTime(a.UpdatedAt, b.UpdatedAt, q.SortAsc)
	case "createdAt":
		return lessTime(a.CreatedAt, b.CreatedAt, q.SortAsc)
	}
	get, ok := stringKeys[q.SortField]
	if !ok {
		return false
	}
	sa := strings.ToLower(get(a))
	sb := strings.ToLower(get(b))
	if sa == sb {
		return false
	}
	if q.SortAsc {
		return sa < sb
	}
	return sa > sb
}

func lessTime(a, b time.Time, asc bool) bool {
	if asc {
		return a.Before(b)
	}
	return a.After(b)
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
