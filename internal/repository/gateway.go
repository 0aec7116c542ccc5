package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/bbqgrill/backend/internal/model"
	"github.com/jackc/pgx/v5"
)

// Gateway executes stored procedures against PostgreSQL. Every call opens
// its own connection and closes it before returning, on success and on
// error. Store errors are wrapped and returned unchanged in kind; the
// gateway does not retry.
type Gateway struct {
	connString string
	connect    Connector
}

// NewGateway creates a Gateway that connects with pgx.
func NewGateway(connString string) *Gateway {
	return NewGatewayWithConnector(connString, PgxConnector)
}

// NewGatewayWithConnector creates a Gateway using connect to open connections.
func NewGatewayWithConnector(connString string, connect Connector) *Gateway {
	return &Gateway{connString: connString, connect: connect}
}

// Ensure Gateway implements the repository interfaces at compile time.
var (
	_ ProcedureRunner = (*Gateway)(nil)
	_ DB              = (*Gateway)(nil)
)

// Query calls a set-returning procedure and materializes all of its rows.
func (g *Gateway) Query(ctx context.Context, procedure string, params ...any) (*model.DataSet, error) {
	sql, err := selectCall(procedure, len(params))
	if err != nil {
		return nil, err
	}

	conn, err := g.open(ctx)
	if err != nil {
		return nil, err
	}
	defer closeConn(ctx, conn)

	rows, err := conn.Query(ctx, sql, params...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", procedure, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	table := model.Table{Columns: make([]string, len(fields)), Rows: [][]any{}}
	for i, f := range fields {
		table.Columns[i] = f.Name
	}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", procedure, err)
		}
		table.Rows = append(table.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", procedure, err)
	}
	return &model.DataSet{Tables: []model.Table{table}}, nil
}

// Execute calls a write procedure and returns the number of rows it changed.
// PostgreSQL reports no row count for CALL, so write procedures are functions
// that return their own count as an integer: `SELECT "proc"($1, ...)`.
// A NULL count is read as 0.
func (g *Gateway) Execute(ctx context.Context, procedure string, params ...any) (int64, error) {
	sql, err := scalarCall(procedure, len(params))
	if err != nil {
		return 0, err
	}

	conn, err := g.open(ctx)
	if err != nil {
		return 0, err
	}
	defer closeConn(ctx, conn)

	rows, err := conn.Query(ctx, sql, params...)
	if err != nil {
		return 0, fmt.Errorf("execute %s: %w", procedure, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("execute %s: %w", procedure, err)
		}
		return 0, fmt.Errorf("execute %s: %w", procedure, ErrNoRowCount)
	}
	values, err := rows.Values()
	if err != nil {
		return 0, fmt.Errorf("execute %s: %w", procedure, err)
	}
	n, err := rowCount(values)
	if err != nil {
		return 0, fmt.Errorf("execute %s: %w", procedure, err)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("execute %s: %w", procedure, err)
	}
	return n, nil
}

func rowCount(values []any) (int64, error) {
	if len(values) != 1 {
		return 0, fmt.Errorf("%w: got %d columns", ErrNoRowCount, len(values))
	}
	switch v := values[0].(type) {
	case nil:
		return 0, nil
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int16:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%w: got %T", ErrNoRowCount, v)
	}
}

// Ping opens a connection, pings the server and closes it.
func (g *Gateway) Ping(ctx context.Context) error {
	conn, err := g.open(ctx)
	if err != nil {
		return err
	}
	defer closeConn(ctx, conn)
	return conn.Ping(ctx)
}

func (g *Gateway) open(ctx context.Context) (Conn, error) {
	conn, err := g.connect(ctx, g.connString)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return conn, nil
}

// closeConn closes conn even when ctx has already been cancelled.
func closeConn(ctx context.Context, conn Conn) {
	_ = conn.Close(context.WithoutCancel(ctx))
}

// selectCall builds `SELECT * FROM "proc"($1, ...)`.
func selectCall(procedure string, n int) (string, error) {
	ident, err := quoteProcedure(procedure)
	if err != nil {
		return "", err
	}
	return "SELECT * FROM " + ident + "(" + placeholders(n) + ")", nil
}

// scalarCall builds `SELECT "proc"($1, ...)`.
func scalarCall(procedure string, n int) (string, error) {
	ident, err := quoteProcedure(procedure)
	if err != nil {
		return "", err
	}
	return "SELECT " + ident + "(" + placeholders(n) + ")", nil
}

// quoteProcedure quotes each dot-separated part of a possibly
// schema-qualified name so the name can never carry SQL.
func quoteProcedure(procedure string) (string, error) {
	if strings.TrimSpace(procedure) == "" {
		return "", ErrInvalidProcedure
	}
	parts := strings.Split(procedure, ".")
	for _, p := range parts {
		if p == "" {
			return "", fmt.Errorf("%w: %q", ErrInvalidProcedure, procedure)
		}
	}
	return pgx.Identifier(parts).Sanitize(), nil
}

func placeholders(n int) string {
	ps := make([]string, n)
	for i := range ps {
		ps[i] = "$" + strconv.Itoa(i+1)
	}
	return strings.Join(ps, ", ")
}
