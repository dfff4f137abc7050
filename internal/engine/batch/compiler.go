// Package batch runs a project's shader jobs through the compiler, one at a time.
package batch

import (
	"context"
	"sync"

	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// JobStatus represents the status of a job within the current run.
type JobStatus string

const (
	// StatusPending indicates the job is waiting to be compiled.
	StatusPending JobStatus = "Pending"
	// StatusRunning indicates the compiler is running for the job.
	StatusRunning JobStatus = "Running"
	// StatusCompleted indicates the compiler exited successfully.
	StatusCompleted JobStatus = "Completed"
	// StatusFailed indicates the compiler failed for the job.
	StatusFailed JobStatus = "Failed"
)

// Compiler compiles shader jobs sequentially and stops at the first failure.
type Compiler struct {
	locator   ports.ToolchainLocator
	outputDir ports.OutputDir
	executor  ports.Executor
	verifier  ports.Verifier
	tracer    ports.Tracer

	mu        sync.RWMutex
	jobStatus map[string]JobStatus
}

// NewCompiler creates a new Compiler with the given dependencies.
func NewCompiler(
	locator ports.ToolchainLocator,
	outputDir ports.OutputDir,
	executor ports.Executor,
	verifier ports.Verifier,
	tracer ports.Tracer,
) *Compiler {
	return &Compiler{
		locator:   locator,
		outputDir: outputDir,
		executor:  executor,
		verifier:  verifier,
		tracer:    tracer,
		jobStatus: make(map[string]JobStatus),
	}
}

// Run compiles the project's jobs, or only the named ones, in enumeration order.
//
// The toolchain is located before anything touches the disk or starts a process.
// The output directory is created once before the first job. The first failing job
// ends the run; outputs written by earlier jobs are kept.
func (c *Compiler) Run(ctx context.Context, project *domain.Project, jobNames []string) error {
	c.initJobStatuses(nil)

	toolchain, err := c.locator.Locate()
	if err != nil {
		return err
	}

	planned, err := project.Jobs()
	if err != nil {
		return err
	}
	jobs, err := domain.SelectJobs(planned, jobNames)
	if err != nil {
		return err
	}

	if _, err := c.outputDir.EnsureDir(project.Layout.OutputDir); err != nil {
		return err
	}

	names := domain.JobNames(jobs)
	c.initJobStatuses(names)
	c.tracer.EmitPlan(ctx, names)

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return zerr.Wrap(err, "compilation interrupted")
		}
		if err := c.compile(ctx, project, toolchain, job); err != nil {
			return err
		}
	}

	ok, err := c.verifier.VerifyOutputs(project.Root, domain.JobOutputs(jobs))
	if err != nil {
		return err
	}
	if !ok {
		return zerr.With(domain.ErrOutputMissing, "output_dir", project.Layout.OutputDir)
	}
	return nil
}

// Status returns the status of a job in the most recent run.
func (c *Compiler) Status(name string) (JobStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	status, ok := c.jobStatus[name]
	return status, ok
}

// Failed reports whether a job failed in the most recent run.
// Such failures have already been rendered through the job's span.
func (c *Compiler) Failed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, status := range c.jobStatus {
		if status == StatusFailed {
			return true
		}
	}
	return false
}

func (c *Compiler) compile(ctx context.Context, project *domain.Project, toolchain domain.Toolchain, job domain.Job) error {
	c.updateStatus(job.Name(), StatusRunning)

	ctx, span := c.tracer.Start(ctx, job.Name())
	defer span.End()

	span.SetAttribute("shader.kind", string(job.Kind))
	span.SetAttribute("shader.dimension", string(job.Dimension))
	span.SetAttribute("shader.source", job.Source)
	span.SetAttribute("shader.output", job.Output)

	inv := job.Invocation(project.Compiler, project.CompilerFlags, toolchain)
	if err := c.executor.Execute(ctx, inv, span, span); err != nil {
		span.RecordError(err)
		c.updateStatus(job.Name(), StatusFailed)
		return zerr.With(zerr.Wrap(err, domain.ErrCompileFailed.Error()), "job", job.Name())
	}

	c.updateStatus(job.Name(), StatusCompleted)
	return nil
}

func (c *Compiler) initJobStatuses(names []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.jobStatus)
	for _, name := range names {
		c.jobStatus[name] = StatusPending
	}
}

func (c *Compiler) updateStatus(name string, status JobStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobStatus[name] = status
}
