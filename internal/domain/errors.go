package domain

import "errors"

var (
	ErrNotFound     = errors.New("not found")
	ErrUnknownBasis = errors.New("unknown basis")
	ErrStaleCase    = errors.New("case was modified concurrently")
)
