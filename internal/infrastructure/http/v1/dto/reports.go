package dto

import (
	"time"

	"billdesk/internal/core/apperror"
	"billdesk/internal/domain/reports"
)

// SalesSeriesQuery represents request for the sales-over-time series.
// Dates are inclusive calendar days; both default to the last 30 days
// when omitted.
type SalesSeriesQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// Window parses the query into a [from, to] time window. Zero values
// mean "use the default window".
func (q *SalesSeriesQuery) Window() (time.Time, time.Time, error) {
	var from, to time.Time
	var err error

	if q.From != "" {
		from, err = time.Parse("2006-01-02", q.From)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.NewValidation("invalid from date, expected YYYY-MM-DD").
				WithDetail("value", q.From)
		}
	}
	if q.To != "" {
		to, err = time.Parse("2006-01-02", q.To)
		if err != nil {
			return time.Time{}, time.Time{}, apperror.NewValidation("invalid to date, expected YYYY-MM-DD").
				WithDetail("value", q.To)
		}
		// make the end bound inclusive of the whole day
		to = to.Add(24*time.Hour - time.Nanosecond)
	}

	return from, to, nil
}

// SalesSeriesResponse represents the sales series response.
type SalesSeriesResponse struct {
	Points []reports.SalesPoint `json:"points"`
}
