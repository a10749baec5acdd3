// Package postgres provides PostgreSQL-specific implementations for the data
// storage interfaces defined in the internal/store package.
// It handles the details of database connections, schema migrations, query
// execution, and data mapping between domain entities and database records.
//
// Every query is parameterized. Uniqueness of emails, usernames and
// friendship pairs is enforced by constraints in the schema; violations are
// mapped to the matching store errors by constraint name.
package postgres
