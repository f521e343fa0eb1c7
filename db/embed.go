// Package db carries the SQL schema compiled into the binary, so the server
// and the seeder can create their tables without external migration files.
package db

import _ "embed"

// Schema is the storefront DDL: services, orders, and home_content. Every
// statement is idempotent (CREATE TABLE IF NOT EXISTS) and applied at startup.
//
//go:embed migrations/001_schema.sql
var Schema string
