// Package style holds the colors and status icons shared by the job renderer,
// the log handler and the artifact table.
package style

import "github.com/charmbracelet/lipgloss"

// Palette, named by what it marks.
var (
	// Heading colors table headers.
	Heading = lipgloss.Color("#8B5CF6")
	// Muted colors informational log lines.
	Muted = lipgloss.Color("#667085")
	// Compiled marks a job whose output was written.
	Compiled = lipgloss.Color("#22A06B")
	// Failed marks a failed job or an error.
	Failed = lipgloss.Color("#D93025")
	// Missing marks absent outputs and warnings.
	Missing = lipgloss.Color("#F59E0B")
)

// Status icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
)
