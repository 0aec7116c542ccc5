package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
)

// schemaConnector opens connections whose search_path is pinned to schema,
// so the migrations and the gateway both see the same throwaway objects.
func schemaConnector(schema string) Connector {
	return func(ctx context.Context, connString string) (Conn, error) {
		cfg, err := pgx.ParseConfig(connString)
		if err != nil {
			return nil, err
		}
		cfg.RuntimeParams["search_path"] = schema
		conn, err := pgx.ConnectConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

func applyMigrations(ctx context.Context, t *testing.T, conn Conn) {
	t.Helper()
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.up.sql"))
	if err != nil || len(files) == 0 {
		t.Fatalf("no migrations found: %v", err)
	}
	sort.Strings(files)
	for _, f := range files {
		sql, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := conn.Exec(ctx, string(sql)); err != nil {
			t.Fatalf("apply %s: %v", f, err)
		}
	}
}

// TestLocationProcedures_Integration installs the shipped schema in a fresh
// schema on BBQ_TEST_DATABASE_URL and checks both lookup functions.
func TestLocationProcedures_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	dbURL := os.Getenv("BBQ_TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("BBQ_TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	schema := fmt.Sprintf("bbq_test_%d", time.Now().UnixNano())

	admin, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	defer admin.Close(ctx)
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+pgx.Identifier{schema}.Sanitize()); err != nil {
		t.Fatalf("create schema: %v", err)
	}
	defer func() {
		_, _ = admin.Exec(ctx, "DROP SCHEMA "+pgx.Identifier{schema}.Sanitize()+" CASCADE")
	}()

	connect := schemaConnector(schema)
	conn, err := connect(ctx, dbURL)
	if err != nil {
		t.Fatalf("connect to schema: %v", err)
	}
	defer conn.Close(ctx)

	applyMigrations(ctx, t, conn)
	_, err = conn.Exec(ctx, `INSERT INTO locations (name, address, city, state, zip_code, is_active) VALUES
		('Downtown Pit', '12 Main St', 'Austin', 'TX', '78701', TRUE),
		('Hill Country', '9 Ranch Rd', 'Dallas', 'TX', '75201', TRUE),
		('Closed Shack', '1 Old Rd', 'Austin', 'TX', '78702', FALSE)`)
	if err != nil {
		t.Fatalf("seed locations: %v", err)
	}

	g := NewGatewayWithConnector(dbURL, connect)

	cases := []struct {
		name      string
		procedure string
		param     string
		wantRows  int
	}{
		{"zip prefix", "Get_Location", "787", 1},
		{"zip prefix other area", "Get_Location", "752", 1},
		{"zip underscore is literal", "Get_Location", "7_7", 0},
		{"zip percent is literal", "Get_Location", "%", 0},
		{"city any case", "Get_Location_By_City_State", "austin", 1},
		{"state", "Get_Location_By_City_State", "tx", 2},
		{"percent is literal", "Get_Location_By_City_State", "%", 0},
		{"underscores are literal", "Get_Location_By_City_State", "______", 0},
		{"no partial city match", "Get_Location_By_City_State", "Aus", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := g.Query(ctx, tc.procedure, tc.param)
			if err != nil {
				t.Fatalf("Query failed: %v", err)
			}
			if got := len(ds.Tables[0].Rows); got != tc.wantRows {
				t.Errorf("%s(%q): expected %d rows, got %d", tc.procedure, tc.param, tc.wantRows, got)
			}
		})
	}
}
