package storage

import "strings"

// PageRequest carries the paging and sorting parameters of a list or search
// call. Page is 0-based; Size must be positive; SortOrder is "asc" or
// "desc" case-insensitively, anything else sorts ascending.
type PageRequest struct {
	Page      int
	Size      int
	SortBy    string
	SortOrder string
}

// Descending reports whether the request asks for descending order.
func (r PageRequest) Descending() bool {
	return strings.EqualFold(r.SortOrder, "desc")
}

func (r PageRequest) direction() string {
	if r.Descending() {
		return "DESC"
	}
	return "ASC"
}

func (r PageRequest) offset() int {
	return r.Page * r.Size
}

// Page is one slice of a paginated result set plus its derived metadata.
type Page[T any] struct {
	Content       []T    `json:"content"`
	Page          int    `json:"page"`
	Size          int    `json:"size"`
	TotalElements int    `json:"totalElements"`
	TotalPages    int    `json:"totalPages"`
	First         bool   `json:"first"`
	Last          bool   `json:"last"`
	HasNext       bool   `json:"hasNext"`
	HasPrevious   bool   `json:"hasPrevious"`
	SortBy        string `json:"sortBy"`
	SortOrder     string `json:"sortOrder"`
}

// NewPage derives the pagination flags for content: totalPages is
// ceil(totalElements/size), First/Last/HasNext/HasPrevious follow from the
// page position. An empty result set has a single, empty, last page view.
func NewPage[T any](content []T, req PageRequest, totalElements int) Page[T] {
	totalPages := 0
	if req.Size > 0 {
		totalPages = (totalElements + req.Size - 1) / req.Size
	}

	hasNext := req.Page+1 < totalPages

	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: totalElements,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          !hasNext,
		HasNext:       hasNext,
		HasPrevious:   req.Page > 0,
		SortBy:        req.SortBy,
		SortOrder:     req.SortOrder,
	}
}

// sortColumn maps a caller-supplied sort field onto a whitelisted column.
// Unknown fields fall back to the primary key; ORDER BY clauses are built
// from these values only.
func sortColumn(allowed map[string]string, requested string) string {
	if column, ok := allowed[strings.ToLower(strings.TrimSpace(requested))]; ok {
		return column
	}
	return "id"
}
