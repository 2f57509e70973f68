// Package db wraps pgxpool with startup retries, goose migrations,
// transactions and error classification.
//
//	pool, err := db.Connect(ctx, cfg.DB, log)
//	if err != nil {
//	    return err
//	}
//	if err := db.Migrate(ctx, pool, migrations.FS, cfg.DB.MigrationsTable, log); err != nil {
//	    return err
//	}
//
// [IsUnavailable] separates "the database is down" from "the query failed",
// so handlers can answer 503 instead of 500. [IsUniqueViolation] detects
// duplicate inserts and [IsNotFound] empty single-row results.
package db
