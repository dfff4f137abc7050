package ports

import (
	"context"
	"io"

	"go.trai.ch/spvbuild/internal/core/domain"
)

// Executor defines the interface for running external processes.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute runs the invocation and waits for it to complete.
	//
	// The invocation's search path is applied to the child process only.
	// Process output is copied to stdout and stderr.
	//
	// It returns an error if the process cannot be started or exits with a non-zero status.
	Execute(ctx context.Context, inv *domain.Invocation, stdout, stderr io.Writer) error
}
