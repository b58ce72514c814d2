// Package lib groups infrastructure that does not belong to a single layer:
// the user cache, password hashing, the asynq job queue and the Resend email
// client. Each lives in its own subpackage.
package lib
