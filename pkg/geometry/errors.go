package geometry

import "errors"

// Generation errors. Callers treat these as recoverable input defects.
var (
	ErrTooFewPoints       = errors.New("geometry: too few points")
	ErrDegenerate         = errors.New("geometry: degenerate polygon")
	ErrNotSimple          = errors.New("geometry: polygon is not simple")
	ErrIndexOutOfRange    = errors.New("geometry: index out of range")
	ErrIncompleteTriangle = errors.New("geometry: index count not a multiple of 3")
)
