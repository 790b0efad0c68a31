// Package exitcode defines the process exit codes of the todo command.
package exitcode

const (
	Success = 0

	// UserError covers bad arguments, unknown task references and
	// operations rejected by validation.
	UserError = 1

	// SetupError covers unreadable or invalid config and storage that
	// cannot be opened or written.
	SetupError = 2
)
