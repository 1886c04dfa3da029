package types

import "errors"

// Catalog errors.
var (
	ErrTitleNotFound  = errors.New("title not found")
	ErrInvalidIndex   = errors.New("index out of range")
	ErrNoMedium       = errors.New("title has no such medium")
	ErrInvalidTitleID = errors.New("invalid title id")
	ErrUnknownMedium  = errors.New("unknown medium kind")
)
