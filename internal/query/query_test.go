package query

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jobdeck/jobdeck/internal/models"
)

func TestCompilePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
		wantSkip  int
	}{
		{"defaults", "", "", 1, 100, 0},
		{"plain", "3", "25", 3, 25, 50},
		{"page zero floors to one", "0", "50", 1, 50, 0},
		{"negative page floors to one", "-4", "50", 1, 50, 0},
		{"garbage page falls back", "abc", "50", 1, 50, 0},
		{"limit zero clamps to one", "1", "0", 1, 1, 0},
		{"limit above max clamps", "1", "9999", 1, 200, 0},
		{"garbage limit falls back", "2", "lots", 2, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compile(Params{Page: tt.page, Limit: tt.limit})
			assert.Equal(t, tt.wantPage, q.Page)
			assert.Equal(t, tt.wantLimit, q.Limit)
			assert.Equal(t, tt.wantSkip, q.Skip)
		})
	}
}

func TestCompileSort(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		wantField string
		wantAsc   bool
	}{
		{"default", "", "updatedAt", false},
		{"explicit asc", "title:asc", "title", true},
		{"explicit desc", "title:desc", "title", false},
		{"weird direction is desc", "title:sideways", "title", false},
		{"no colon keeps default", "title", "updatedAt", false},
		{"unknown field taken verbatim", "salary:asc", "salary", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Compile(Params{Sort: tt.sort})
			assert.Equal(t, tt.wantField, q.SortField)
			assert.Equal(t, tt.wantAsc, q.SortAsc)
		})
	}
}

func TestCompileTrimsSearch(t *testing.T) {
	q := Compile(Params{Search: "  amd  "})
	assert.Equal(t, "amd", q.Search)
}

func TestMatchSearchSpansAllServerFields(t *testing.T) {
	job := models.Job{
		Title:    "Backend Engineer",
		Company:  "AMD Inc",
		Source:   "referral",
		Location: "Austin, TX",
		Stage:    "phone screen",
		Details:  "met recruiter at gophercon",
	}

	for _, term := range []string{"amd", "BACKEND", "referral", "austin", "phone", "gophercon"} {
		assert.True(t, Compile(Params{Search: term}).Match(job), "term %q", term)
	}
	assert.False(t, Compile(Params{Search: "kubernetes"}).Match(job))
}

func TestMatchFiltersAreANDed(t *testing.T) {
	job := models.Job{Title: "SWE", Company: "AMD Inc", Status: "applied", Priority: "high", Location: "Remote"}

	assert.True(t, Compile(Params{Search: "amd", Status: "applied"}).Match(job))
	assert.False(t, Compile(Params{Search: "amd", Status: "offer"}).Match(job))
	assert.True(t, Compile(Params{Priority: "high", Location: "remote"}).Match(job))
	assert.False(t, Compile(Params{Priority: "low"}).Match(job))
}

func TestMatchInvalidEnumMatchesNothing(t *testing.T) {
	job := models.Job{Title: "SWE", Status: "saved", Priority: "med"}
	assert.False(t, Compile(Params{Status: "archived"}).Match(job))
	assert.False(t, Compile(Params{Priority: "urgent"}).Match(job))
}

func TestLessCaseFoldedStrings(t *testing.T) {
	jobs := []models.Job{{Title: "Zeta"}, {Title: "alpha"}, {Title: "Beta"}}

	q := Compile(Params{Sort: "title:asc"})
	sort.SliceStable(jobs, func(i, j int) bool { return q.Less(jobs[i], jobs[j]) })

	var titles []string
	for _, j := range jobs {
		titles = append(titles, j.Title)
	}
	assert.Equal(t, []string{"alpha", "Beta", "Zeta"}, titles)
}

func TestLessDatesCompareAsInstants(t *testing.T) {
	older := models.Job{UpdatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := models.Job{UpdatedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)}

	desc := Compile(Params{Sort: "updatedAt:desc"})
	assert.True(t, desc.Less(newer, older))
	assert.False(t, desc.Less(older, newer))

	asc := Compile(Params{Sort: "updatedAt:asc"})
	assert.True(t, asc.Less(older, newer))

	// Zero time sorts as the earliest instant.
	assert.True(t, asc.Less(models.Job{}, older))
}

func TestLessUnknownFieldLeavesOrderAlone(t *testing.T) {
	q := Compile(Params{Sort: "salary:asc"})
	a := models.Job{Title: "A"}
	b := models.Job{Title: "B"}
	assert.False(t, q.Less(a, b))
	assert.False(t, q.Less(b, a))
}

func TestLessContentAliasSortsByDetails(t *testing.T) {
	q := Compile(Params{Sort: "content:asc"})
	a := models.Job{Details: "alpha"}
	b := models.Job{Details: "beta"}
	assert.True(t, q.Less(a, b))
}
