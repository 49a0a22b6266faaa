package dtos

import "github.com/jobdeck/jobdeck/internal/models"

// CreateJobRequest carries the fields accepted on job creation. Details and
// Content are pointers so the service can tell "omitted" from "set to empty";
// when both arrive in one request the legacy content key wins.
type CreateJobRequest struct {
	Title    string  `json:"title"`
	Company  string  `json:"company"`
	Status   string  `json:"status"`
	Priority string  `json:"priority"`
	Stage    string  `json:"stage"`
	Source   string  `json:"source"`
	Location string  `json:"location"`
	Link     string  `json:"link"`
	Details  *string `json:"details"`
	Content  *string `json:"content"`
}

// JobPatch is the whitelist of mutable fields for partial updates. Every
// field is a pointer: nil means "not in this patch". Unknown JSON keys are
// dropped by the decoder, which is exactly the whitelist behaviour we want.
type JobPatch struct {
	Title    *string `json:"title"`
	Company  *string `json:"company"`
	Status   *string `json:"status"`
	Priority *string `json:"priority"`
	Stage    *string `json:"stage"`
	Source   *string `json:"source"`
	Location *string `json:"location"`
	Link     *string `json:"link"`
	Details  *string `json:"details"`
	Content  *string `json:"content"`
}

// ListResponse is the page envelope returned by the listing endpoint.
type ListResponse struct {
	Items []models.Job `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

// ReviewRequest is the payload for the AI resume review endpoint.
type ReviewRequest struct {
	Resume string `json:"resume"`
	Job    string `json:"job"`
}

// ReviewResponse wraps the generated review text.
type ReviewResponse struct {
	Text string `json:"text"`
}
