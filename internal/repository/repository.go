// Package repository declares the persistence contracts for workflow
// documents and survey responses. Implementations live in subpackages.
package repository

import "errors"

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("record not found")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a page of T plus the total number of rows.
type PageResult[T any] struct {
	Items []T
	Total int
}
