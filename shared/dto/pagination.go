package dto

import "math"

type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// Pagination carries page descriptors for list responses. Next and Prev are
// present only when the corresponding page exists.
type Pagination struct {
	Next      *Page `json:"next,omitempty"`
	Prev      *Page `json:"prev,omitempty"`
	TotalPage int   `json:"total_page"`
	TotalData int   `json:"total_data"`
}

func PaginationFor(page, limit, total int) Pagination {
	totalPage := 1
	if total > 0 && limit > 0 {
		totalPage = int(math.Ceil(float64(total) / float64(limit)))
	}

	p := Pagination{
		TotalPage: totalPage,
		TotalData: total,
	}

	if page > 1 {
		p.Prev = &Page{Page: page - 1, Limit: limit}
	}

	if limit > 0 && page*limit < total {
		p.Next = &Page{Page: page + 1, Limit: limit}
	}

	return p
}
