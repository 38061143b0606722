package dbhelper

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrDuplicateReview = errors.New("user has already reviewed this restaurant")
)
