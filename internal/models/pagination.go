package models

import (
	"errors"
	"math"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

type Pagination struct {
	Page    int `query:"page"`
	PerPage int `query:"per_page"`
}

// Normalize fills in defaults for unset fields and rejects out-of-range values.
func (p Pagination) Normalize() (Pagination, error) {
	if p.Page == 0 {
		p.Page = 1
	}
	if p.PerPage == 0 {
		p.PerPage = DefaultPerPage
	}
	if p.Page < 1 {
		return p, errors.New("page must be at least 1")
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return p, errors.New("per_page must be between 1 and 100")
	}
	if p.Page > math.MaxInt/p.PerPage {
		return p, errors.New("page is out of range")
	}
	return p, nil
}

func (p Pagination) Limit() int {
	return p.PerPage
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}
