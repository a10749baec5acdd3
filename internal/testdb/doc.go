// Package testdb provides helpers for tests that run against a real
// PostgreSQL database.
//
// Tests using it carry the "integration" build tag and are skipped when no
// database URL is configured:
//
//	CALORIE_TEST_DATABASE_URL=postgres://... go test -tags=integration ./...
//
// GetTestDB opens a pool once per test binary and applies every migration.
// WithTx runs a test body inside a transaction that is always rolled back,
// so tests never see each other's rows.
package testdb
