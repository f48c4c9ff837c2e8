package core

import (
	"errors"
)

var (
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrLengthMismatch       = errors.New("array length mismatch")
	ErrInsufficientVertices = errors.New("not enough vertices")
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrDegenerateGeometry   = errors.New("degenerate geometry")
	ErrBufferMismatch       = errors.New("buffer does not reference the mesh vertex buffer")
	ErrNotFound             = errors.New("not found")
	ErrRegistryFull         = errors.New("no free registry slot")
)
