package cli

// CommandError reports a luca command that finished with problems already
// printed to stderr: a document that failed to load, schema problems or
// unbalanced journal entries. main unwraps it with errors.As and exits with
// its code, so commands never call os.Exit themselves.
type CommandError struct {
	exitCode int
	reason   string
}

// NewCommandError returns a CommandError that exits with exitCode. The reason
// is a short summary of what was reported.
func NewCommandError(exitCode int, reason string) *CommandError {
	return &CommandError{exitCode: exitCode, reason: reason}
}

func (e *CommandError) Error() string {
	if e.reason == "" {
		return "command failed"
	}
	return e.reason
}

// ExitCode is the process exit status for the failed command.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}
