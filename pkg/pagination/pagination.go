// Package pagination provides limit/offset windowing for list queries.
package pagination

import (
	"net/url"
	"strconv"
)

// PageRequest represents a client request for a window of a larger result set.
type PageRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize adjusts the request to valid windowing values based on the config.
func (r *PageRequest) Normalize(cfg Config) {
	if r.Limit < 1 {
		r.Limit = cfg.DefaultLimit
	}
	if r.Limit > cfg.MaxLimit {
		r.Limit = cfg.MaxLimit
	}
	if r.Offset < 0 {
		r.Offset = 0
	}
}

// PageRequestFromQuery parses limit and offset from URL query values and
// normalizes the result according to the provided config.
func PageRequestFromQuery(values url.Values, cfg Config) PageRequest {
	limit, _ := strconv.Atoi(values.Get("limit"))
	offset, _ := strconv.Atoi(values.Get("offset"))

	req := PageRequest{Limit: limit, Offset: offset}
	req.Normalize(cfg)
	return req
}

// PageResult holds a window of data along with the total unwindowed count.
type PageResult[T any] struct {
	Data   []T `json:"data"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// NewPageResult creates a PageResult, normalizing nil data to an empty slice.
func NewPageResult[T any](data []T, total int, req PageRequest) PageResult[T] {
	if data == nil {
		data = []T{}
	}
	return PageResult[T]{
		Data:   data,
		Total:  total,
		Limit:  req.Limit,
		Offset: req.Offset,
	}
}
