// Package sqlerr handles database driver errors.
//
// It parses SQLSTATE codes coming out of pgx and turns them into either the
// domain error kinds of package errs (for the service layer) or client-facing
// HTTP errors (for the global error handler).
package sqlerr
