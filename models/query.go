package models

import (
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContactFilter selects contacts; zero fields do not constrain.
type ContactFilter struct {
	IDs      []primitive.ObjectID
	Status   ContactStatus
	Priority Priority
	Service  Service
	IsRead   *bool
	Search   string    // case-insensitive substring over name, email, company, subject, message
	From     time.Time // createdAt >= From
	To       time.Time // createdAt < To
}

// ContactUpdate is a partial update; nil fields are left unchanged.
type ContactUpdate struct {
	Status   *ContactStatus
	Priority *Priority
	IsRead   *bool
}

// Empty reports whether the update would change nothing.
func (u ContactUpdate) Empty() bool {
	return u.Status == nil && u.Priority == nil && u.IsRead == nil
}

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

// Skip returns the number of documents before the page.
func (p Page) Skip() int {
	if p.Page < 1 || p.Limit < 1 {
		return 0
	}
	if p.Page > math.MaxInt/p.Limit {
		return math.MaxInt - math.MaxInt%p.Limit
	}
	return (p.Page - 1) * p.Limit
}

// Pagination is returned alongside every paged list.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPagination computes TotalPages for total items split into p.Limit-sized pages.
func NewPagination(p Page, total int64) Pagination {
	pages := 0
	if p.Limit > 0 {
		pages = int((total + int64(p.Limit) - 1) / int64(p.Limit))
	}
	return Pagination{Page: p.Page, Limit: p.Limit, Total: total, TotalPages: pages}
}
