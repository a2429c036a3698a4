package main

import (
	"context"
	"fmt"
	"os"
	"regexp"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

// tenantPattern matches safe schema names; interpolated into DDL, so nothing
// outside this alphabet is accepted.
var tenantPattern = regexp.MustCompile(`^[a-z][a-z0-9_]{0,62}$`)

// Provisions a tenant: creates its schema and applies the vendor DDL inside
// it. Re-running against an existing tenant is harmless; every statement is
// IF NOT EXISTS.
func main() {
	_ = godotenv.Load()

	if len(os.Args) != 2 {
		fmt.Println("usage: migrate <tenant>")
		os.Exit(1)
	}
	tenant := os.Args[1]
	if !tenantPattern.MatchString(tenant) {
		fmt.Printf("invalid tenant name: %q\n", tenant)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, os.Getenv("DATABASE_URL"))
	if err != nil {
		fmt.Printf("Failed to connect to DB: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	sqlFile, err := os.ReadFile("migrations/001_vendor_schema.sql")
	if err != nil {
		fmt.Printf("Failed to read sql file: %v\n", err)
		os.Exit(1)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		fmt.Printf("Failed to begin transaction: %v\n", err)
		os.Exit(1)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, tenant)); err != nil {
		fmt.Printf("Failed to create schema: %v\n", err)
		os.Exit(1)
	}
	if _, err := tx.Exec(ctx, fmt.Sprintf(`SET LOCAL search_path = "%s"`, tenant)); err != nil {
		fmt.Printf("Failed to set search_path: %v\n", err)
		os.Exit(1)
	}
	if _, err := tx.Exec(ctx, string(sqlFile)); err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}
	if err := tx.Commit(ctx); err != nil {
		fmt.Printf("Commit failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Tenant %q provisioned.\n", tenant)
}
