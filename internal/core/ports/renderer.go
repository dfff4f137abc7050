package ports

import "time"

// Renderer is the abstraction for output rendering.
// It decouples telemetry collection from presentation logic.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Stop flushes any buffered output.
	Stop() error

	// OnPlanEmit is called once the job list for a run is known.
	// jobs: job names in execution order
	OnPlanEmit(jobs []string)

	// OnTaskStart is called when a job begins execution.
	// spanID: unique identifier for this job execution
	// parentID: spanID of the parent span (empty if root)
	// name: job name
	// startTime: when the job started
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a job emits output.
	// data: raw bytes (may contain partial lines)
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a job finishes.
	// err: nil if successful, error otherwise
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
