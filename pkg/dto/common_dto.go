package dto

import (
	"bouncearound.com/daycare/pkg/apperror"
	"bouncearound.com/daycare/pkg/datetime"
)

const MaxPageSize = 100

// PageQuery is embedded in list filters; zero values are replaced by Normalize.
type PageQuery struct {
	Page     int `form:"page" binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

func (q *PageQuery) Normalize(defaultSize int) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = defaultSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type PaginationMeta struct {
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
}

type Paginated[T any] struct {
	Data []T           `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

func NewPaginated[T any](data []T, q PageQuery, total int64) *Paginated[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if q.PageSize > 0 {
		totalPages = int((total + int64(q.PageSize) - 1) / int64(q.PageSize))
	}
	return &Paginated[T]{
		Data: data,
		Meta: PaginationMeta{
			CurrentPage: q.Page,
			PageSize:    q.PageSize,
			TotalItems:  total,
			TotalPages:  totalPages,
		},
	}
}

type DateRangeQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// Resolve parses the range, defaulting to the defaultDays days ending today.
func (q DateRangeQuery) Resolve(today datetime.Date, defaultDays int) (datetime.Date, datetime.Date, error) {
	start, end := today.AddDays(-defaultDays), today
	if q.StartDate != "" {
		d, err := datetime.ParseDate(q.StartDate)
		if err != nil {
			return start, end, apperror.InvalidInput(err.Error())
		}
		start = d
	}
	if q.EndDate != "" {
		d, err := datetime.ParseDate(q.EndDate)
		if err != nil {
			return start, end, apperror.InvalidInput(err.Error())
		}
		end = d
	}
	return start, end, nil
}

// Range is an inclusive pair of days echoed back in summaries.
type Range struct {
	StartDate datetime.Date `json:"start_date"`
	EndDate   datetime.Date `json:"end_date"`
}
