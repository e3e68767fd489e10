package domain

import "errors"

var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNoData        = errors.New("no sleep data found for the specified parameters")
	ErrRangeTooLarge = errors.New("requested date range is too large")
	ErrStorage       = errors.New("storage failure")
)
