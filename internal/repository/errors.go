package repository

import "errors"

// ErrInvalidProcedure is returned when a procedure name is empty or malformed.
// It is raised before any connection is opened.
var ErrInvalidProcedure = errors.New("invalid procedure name")

// ErrNoRowCount is returned when a write procedure does not return a single
// integer count.
var ErrNoRowCount = errors.New("procedure did not return a row count")
