package domain

// Invocation describes a single external process run.
type Invocation struct {
	// Label identifies the invocation in logs and errors.
	Label string
	// Command is the argv; Command[0] is resolved against the augmented search path.
	Command []string
	// SearchPath lists directories appended to PATH for this invocation only.
	SearchPath []string
	// Environment holds variables overriding the inherited environment.
	Environment map[string]string
	// WorkingDir is the process working directory. Empty means the current directory.
	WorkingDir string
}
