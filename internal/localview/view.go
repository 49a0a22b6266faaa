// Package localview reimplements the listing filter and sort over a page of
// records already held by a client, so the visible set reacts to filter edits
// without a round trip. It is deliberately an independent implementation, not
// a reuse of the server predicate: its search scope is narrower (it never
// looks at the notes field) and it only orders the page it holds.
package localview

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jobdeck/jobdeck/internal/models"
)

// All is the sentinel that disables a select-style filter.
const All = "all"

// DefaultDebounce matches the UI's quiet period for search typing.
const DefaultDebounce = 250 * time.Millisecond

// Filters is the live UI filter state.
type Filters struct {
	Search   string
	Status   string
	Priority string
	Location string
}

// DefaultFilters selects everything.
func DefaultFilters() Filters {
	return Filters{Status: All, Priority: All, Location: All}
}

// Sort is the live UI sort state.
type Sort struct {
	Field string
	Asc   bool
}

// DefaultSort shows the most recently touched records first.
func DefaultSort() Sort {
	return Sort{Field: "updatedAt", Asc: false}
}

// View holds the fetched page plus committed filter/sort state. Filter edits
// go through a debounce: Idle → Pending(timer) → Committed, and every edit
// before the timer fires cancels and reschedules it, so a burst of keystrokes
// commits exactly once with the last value.
type View struct {
	mu      sync.Mutex
	jobs    []models.Job
	filters Filters
	pending Filters
	sorting Sort

	delay    time.Duration
	timer    *time.Timer
	gen      uint64
	onCommit func([]models.Job)
}

// New builds a View. onCommit, if non-nil, receives the recomputed visible
// slice once per committed filter change.
func New(delay time.Duration, onCommit func([]models.Job)) *View {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &View{
		filters:  DefaultFilters(),
		pending:  DefaultFilters(),
		sorting:  DefaultSort(),
		delay:    delay,
		onCommit: onCommit,
	}
}

// SetJobs replaces the held page, e.g. after a fresh fetch.
func (v *View) SetJobs(jobs []models.Job) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.jobs = append([]models.Job(nil), jobs...)
}

// RemoveJob drops a record locally, mirroring an optimistic delete in the UI.
func (v *View) RemoveJob(id string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for i, j := range v.jobs {
		if j.ID == id {
			v.jobs = append(v.jobs[:i], v.jobs[i+1:]...)
			return
		}
	}
}

// EditFilters records a filter edit and (re)starts the debounce timer.
// Last write wins; nothing is queued. Each edit bumps the generation so a
// timer that already fired but hasn't committed yet (Stop raced the expiry)
// sees itself superseded and publishes nothing.
func (v *View) EditFilters(f Filters) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pending = f
	v.gen++
	gen := v.gen
	if v.timer != nil {
		v.timer.Stop()
	}
	v.timer = time.AfterFunc(v.delay, func() { v.commit(gen) })
}

func (v *View) commit(gen uint64) {
	v.mu.Lock()
	if gen != v.gen {
		// A newer edit or Stop superseded this timer while it was firing;
		// the rescheduled timer owns the commit.
		v.mu.Unlock()
		return
	}
	v.filters = v.pending
	v.timer = nil
	visible := v.visibleLocked()
	cb := v.onCommit
	v.mu.Unlock()

	if cb != nil {
		cb(visible)
	}
}

// SetSort switches the sort key immediately; only search typing debounces.
func (v *View) SetSort(s Sort) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.sorting = s
}

// Stop cancels any pending commit, discarding the uncommitted edit. Bumping
// the generation also silences a timer that fired before Stop got the lock.
func (v *View) Stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	if v.timer != nil {
		v.timer.Stop()
		v.timer = nil
	}
}

// Visible returns the filtered, sorted page under the committed state.
func (v *View) Visible() []models.Job {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.visibleLocked()
}

func (v *View) visibleLocked() []models.Job {
	out := make([]models.Job, 0, len(v.jobs))
	for _, j := range v.jobs {
		if matches(j, v.filters) {
			out = append(out, j)
		}
	}
	s := v.sorting
	sort.SliceStable(out, func(i, k int) bool {
		return less(out[i], out[k], s)
	})
	return out
}

// matches is the client-side predicate. Search scans title, company, source,
// location and stage joined into one haystack, but not the notes field, which
// only the server-side search covers.
func matches(j models.Job, f Filters) bool {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q != "" {
		parts := make([]string, 0, 5)
		for _, p := range []string{j.Title, j.Company, j.Source, j.Location, j.Stage} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if !strings.Contains(strings.ToLower(strings.Join(parts, " ")), q) {
			return false
		}
	}
	if f.Status != All && j.Status != f.Status {
		return false
	}
	if f.Priority != All && j.Priority != f.Priority {
		return false
	}
	if f.Location != All && !strings.Contains(strings.ToLower(j.Location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

var fieldOf = map[string]func(models.Job) string{
	"id":       func(j models.Job) string { return j.ID },
	"title":    func(j models.Job) string { return j.Title },
	"company":  func(j models.Job) string { return j.Company },
	"status":   func(j models.Job) string { return j.Status },
	"priority": func(j models.Job) string { return j.Priority },
	"stage":    func(j models.Job) string { return j.Stage },
	"source":   func(j models.Job) string { return j.Source },
	"location": func(j models.Job) string { return j.Location },
	"link":     func(j models.Job) string { return j.Link },
}

// less mirrors the server comparator: dates as instants, everything else
// case-folded. It only ever orders the page the view holds, so cross-page
// ordering is out of scope here.
func less(a, b models.Job, s Sort) bool {
	switch s.Field {
	case "updatedAt":
		if s.Asc {
			return a.UpdatedAt.Before(b.UpdatedAt)
		}
		return a.UpdatedAt.After(b.UpdatedAt)
	case "createdAt":
		if s.Asc {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	}
	get, ok := fieldOf[s.Field]
	if !ok {
		return false
	}
	sa := strings.ToLower(get(a))
	sb := strings.ToLower(get(b))
	if sa == sb {
		return false
	}
	if s.Asc {
		return sa < sb
	}
	return sa > sb
}
