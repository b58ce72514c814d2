// Package errs define custom error types and utilities.
//
// It holds two families of errors:
//   - HTTPError, the shape every API client receives (JSON).
//   - Domain error kinds (ValidationError, DuplicateResourceError, NotFoundError,
//     InvalidOperationError, DatabaseError) returned by the service layer and
//     translated to HTTPError at the edge by ToHTTPError.
package errs
