package repository

import (
	"context"

	"github.com/bbqgrill/backend/internal/model"
)

// DB checks that the store is reachable.
type DB interface {
	Ping(ctx context.Context) error
}

// ProcedureRunner invokes named stored procedures with positional parameters.
type ProcedureRunner interface {
	// Query returns the fully materialized result of the procedure.
	Query(ctx context.Context, procedure string, params ...any) (*model.DataSet, error)
	// Execute returns the number of rows the procedure affected.
	Execute(ctx context.Context, procedure string, params ...any) (int64, error)
}
