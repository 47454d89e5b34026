package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	databasepb "cloud.google.com/go/spanner/admin/database/apiv1/databasepb"

	"github.com/murkotick/catalog-store/internal/pkg/config"
)

// A tiny migration helper that applies the DDL in migrations/001_initial_schema.sql
// to a Cloud Spanner database (typically the emulator for local dev).
//
// Usage (emulator):
//
//	export SPANNER_EMULATOR_HOST=localhost:9010
//	export CATALOG_SPANNER_DATABASE=projects/test-project/instances/emulator-instance/databases/test-db
//	go run ./cmd/migrate
func main() {
	configFile := flag.String("config", os.Getenv("CATALOG_CONFIG"), "path to a YAML or JSON config file")
	ddlPath := flag.String("ddl", filepath.Join("migrations", "001_initial_schema.sql"), "DDL file to apply")
	flag.Parse()

	if err := run(*configFile, *ddlPath); err != nil {
		slog.Error("migrate", "err", err)
		os.Exit(1)
	}
}

func run(configFile, ddlPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	vc, err := config.Load(configFile)
	if err != nil {
		return err
	}
	db := vc.Get().Spanner.Database
	if db == "" {
		return fmt.Errorf("spanner.database is required (e.g. projects/test-project/instances/emulator-instance/databases/test-db)")
	}

	stmts, err := readDDLStatements(ddlPath)
	if err != nil {
		return fmt.Errorf("read DDL: %w", err)
	}
	if len(stmts) == 0 {
		return fmt.Errorf("no DDL statements found in %s", ddlPath)
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("database admin client: %w", err)
	}
	defer admin.Close()

	op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
		Database:   db,
		Statements: stmts,
	})
	if err != nil {
		return fmt.Errorf("UpdateDatabaseDdl: %w", err)
	}
	if err := op.Wait(ctx); err != nil {
		return fmt.Errorf("UpdateDatabaseDdl wait: %w", err)
	}

	slog.Info("applied DDL", "statements", len(stmts), "database", db)
	return nil
}

func readDDLStatements(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Normalize line endings for Windows-authored files.
	sql := strings.ReplaceAll(string(b), "\r\n", "\n")

	parts := strings.Split(sql, ";")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		stmt := strings.TrimSpace(p)
		if stmt == "" {
			continue
		}
		out = append(out, stmt)
	}
	return out, nil
}
