// Package postgres implements the store interfaces against a PostgreSQL
// database using hand-written SQL over the pgx stdlib driver.
package postgres
