package entities

// ProcessResult is the typed outcome of one external command invocation.
// Callers branch on ExitCode, never on parsed output.
type ProcessResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Succeeded reports whether the process exited cleanly.
func (r ProcessResult) Succeeded() bool {
	return r.ExitCode == 0
}

// CombinedOutput returns stdout and stderr joined for diagnostics.
func (r ProcessResult) CombinedOutput() string {
	if r.Stdout == "" {
		return r.Stderr
	}
	if r.Stderr == "" {
		return r.Stdout
	}
	return r.Stdout + "\n" + r.Stderr
}
