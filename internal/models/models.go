package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status values a tracked application moves through.
const (
	StatusSaved     = "saved"
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// Priority levels.
const (
	PriorityLow  = "low"
	PriorityMed  = "med"
	PriorityHigh = "high"
)

// ValidStatus reports whether s is a known status value.
func ValidStatus(s string) bool {
	switch s {
	case StatusSaved, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// ValidPriority reports whether p is a known priority value.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh:
		return true
	}
	return false
}

// Job is a tracked job posting. Details is the single source of truth for
// notes; the legacy "content" key is emitted as an alias on the wire so older
// clients keep working (see MarshalJSON).
type Job struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title    string `gorm:"not null" json:"title"`
	Company  string `json:"company"`
	Status   string `gorm:"default:'saved';index" json:"status"`
	Priority string `gorm:"default:'med';index" json:"priority"`
	Stage    string `json:"stage"`
	Source   string `json:"source"`
	Location string `json:"location"`
	Link     string `json:"link"`
	Details  string `gorm:"type:text" json:"-"`
}

// BeforeCreate assigns an opaque id when the caller didn't supply one.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}

// UnmarshalJSON accepts either notes key; when both are present the legacy
// "content" key wins, matching the write-path mirror rule.
func (j *Job) UnmarshalJSON(data []byte) error {
	type alias Job
	aux := struct {
		*alias
		Details *string `json:"details"`
		Content *string `json:"content"`
	}{alias: (*alias)(j)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	switch {
	case aux.Content != nil:
		j.Details = *aux.Content
	case aux.Details != nil:
		j.Details = *aux.Details
	}
	return nil
}

// MarshalJSON mirrors Details into the legacy "content" key.
func (j Job) MarshalJSON() ([]byte, error) {
	type alias Job
	return json.Marshal(struct {
		alias
		Details string `json:"details"`
		Content string `json:"content"`
	}{
		alias:   alias(j),
		Details: j.Details,
		Content: j.Details,
	})
}
