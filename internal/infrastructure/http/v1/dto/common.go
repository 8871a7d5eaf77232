// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"billdesk/internal/core/id"
	"billdesk/internal/domain"
)

// --- List Response ---

// ListResponse wraps list results with pagination.
type ListResponse struct {
	Items      any   `json:"items"`
	TotalCount int64 `json:"totalCount"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// NewListResponse converts a domain list result, mapping each item.
func NewListResponse[T, R any](res domain.ListResult[T], mapFn func(T) R) ListResponse {
	items := make([]R, len(res.Items))
	for i, it := range res.Items {
		items[i] = mapFn(it)
	}
	return ListResponse{
		Items:      items,
		TotalCount: res.TotalCount,
		Limit:      res.Limit,
		Offset:     res.Offset,
	}
}

// --- Common query parameters ---

// ListQuery contains common list query parameters.
type ListQuery struct {
	Search         string `form:"search"`
	OrderBy        string `form:"orderBy"`
	Limit          int    `form:"limit"`
	Offset         int    `form:"offset"`
	IncludeDeleted bool   `form:"includeDeleted"`
}

// ToFilter converts query parameters to a domain filter.
func (q *ListQuery) ToFilter() domain.ListFilter {
	f := domain.DefaultListFilter()
	f.Search = q.Search
	f.IncludeDeleted = q.IncludeDeleted
	if q.OrderBy != "" {
		f.OrderBy = q.OrderBy
	}
	if q.Limit > 0 {
		f.Limit = q.Limit
	}
	if q.Offset > 0 {
		f.Offset = q.Offset
	}
	return f
}

// --- ID Response ---

// IDResponse for create operations.
type IDResponse struct {
	ID string `json:"id"`
}

// NewIDResponse creates ID response.
func NewIDResponse(i id.ID) IDResponse {
	return IDResponse{ID: i.String()}
}

// --- Success Response ---

// SuccessResponse for operations without data.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- Error Response ---

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// --- Deletion ---

type SetDeletionMarkRequest struct {
	Marked bool `json:"marked"`
}
