// Package postgres implements credential.Repository on PostgreSQL.
//
// The users table and its unique email index ship as embedded goose
// migrations; apply them with Migrate before serving. A unique violation on
// insert is reported as credential.ErrDuplicateUser, so concurrent
// registrations of the same email resolve to exactly one winner.
package postgres
