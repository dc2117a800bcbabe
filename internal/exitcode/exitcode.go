// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown list or task number).
	UserError = 1

	// AuthError indicates a missing session, unusable credentials or an
	// unreadable file in the config directory.
	AuthError = 2

	// BackendError indicates a failed request: a result code other than OK
	// or a network error.
	BackendError = 3
)
