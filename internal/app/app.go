// Package app implements the application layer for spvbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"sync"
	"time"

	"go.trai.ch/spvbuild/internal/adapters/watcher"
	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/spvbuild/internal/engine/batch"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	compiler     *batch.Compiler
	outputDir    ports.OutputDir
	hasher       ports.Hasher
	logger       ports.Logger
	newWatcher   watcher.Factory
	window       time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	compiler *batch.Compiler,
	outputDir ports.OutputDir,
	hasher ports.Hasher,
	log ports.Logger,
	newWatcher watcher.Factory,
) *App {
	return &App{
		configLoader: loader,
		compiler:     compiler,
		outputDir:    outputDir,
		hasher:       hasher,
		logger:       log,
		newWatcher:   newWatcher,
		window:       watcher.DefaultWindow,
	}
}

// WithDebounceWindow sets the quiet period watch waits for before recompiling.
func (a *App) WithDebounceWindow(window time.Duration) *App {
	a.window = window
	return a
}

// Options selects the project a command operates on.
type Options struct {
	// Root is the project root. Empty means the working directory.
	Root string
}

// CompileOptions configuration for the Compile method.
type CompileOptions struct {
	Options
	// Jobs restricts the run to the named jobs. Empty compiles every job.
	Jobs []string
}

// Compile compiles the project's shaders.
// Job failures are joined with domain.ErrBuildExecutionFailed since they were already rendered.
func (a *App) Compile(ctx context.Context, opts CompileOptions) error {
	project, err := a.load(opts.Options)
	if err != nil {
		return err
	}
	return a.run(ctx, project, opts.Jobs)
}

// List reports the on-disk state of every job's output.
func (a *App) List(_ context.Context, opts Options) ([]domain.Artifact, error) {
	project, err := a.load(opts)
	if err != nil {
		return nil, err
	}

	jobs, err := project.Jobs()
	if err != nil {
		return nil, err
	}

	artifacts := make([]domain.Artifact, 0, len(jobs))
	for _, job := range jobs {
		artifact := domain.Artifact{Job: job}

		info, err := os.Stat(job.Output)
		switch {
		case errors.Is(err, iofs.ErrNotExist):
		case err != nil:
			return nil, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", job.Output)
		case info.Mode().IsRegular():
			digest, err := a.hasher.ComputeFileHash(job.Output)
			if err != nil {
				return nil, err
			}
			artifact.Exists = true
			artifact.Size = info.Size()
			artifact.Digest = digest
		}

		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

// Clean removes the project's output directory.
func (a *App) Clean(_ context.Context, opts Options) error {
	project, err := a.load(opts)
	if err != nil {
		return err
	}

	dir := project.Layout.OutputDir
	a.logger.Info(fmt.Sprintf("removing %s...", dir))
	if err := a.outputDir.Clean(dir); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("removed %s", dir))
	return nil
}

// Watch compiles once, then recompiles every job whenever a file in the shader directory changes.
//
// A configuration error, including a missing toolchain, ends Watch before anything is watched.
// A failed job only fails that run; watching continues until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts Options) error {
	project, err := a.load(opts)
	if err != nil {
		return err
	}

	if err := a.run(ctx, project, nil); err != nil {
		if !errors.Is(err, domain.ErrBuildExecutionFailed) {
			return err
		}
		a.logger.Warn(a.failureSummary(project))
	}

	w, err := a.newWatcher()
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}
	if err := w.Start(ctx, project.Layout.ShaderDir, project.Layout.OutputDir); err != nil {
		_ = w.Stop()
		return zerr.With(zerr.Wrap(err, "failed to watch shader directory"), "path", project.Layout.ShaderDir)
	}
	a.logger.Info(fmt.Sprintf("watching %s for changes", project.Layout.ShaderDir))

	var mu sync.Mutex
	rebuild := func(paths []string) {
		mu.Lock()
		defer mu.Unlock()

		if ctx.Err() != nil {
			return
		}
		a.logger.Info(describeChange(paths))
		if err := a.run(ctx, project, nil); err != nil {
			if errors.Is(err, domain.ErrBuildExecutionFailed) {
				a.logger.Warn(a.failureSummary(project))
				return
			}
			a.logger.Error(err)
		}
	}
	debouncer := watcher.NewDebouncer(a.window, rebuild)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		for event := range w.Events() {
			debouncer.Add(event.Path)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		debouncer.Stop()
		return w.Stop()
	})

	err = g.Wait()

	// Wait for an in-flight rebuild to finish before returning.
	mu.Lock()
	defer mu.Unlock()
	return err
}

func (a *App) load(opts Options) (*domain.Project, error) {
	root := opts.Root
	if root == "" {
		root = "."
	}
	project, err := a.configLoader.Load(root)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

func (a *App) run(ctx context.Context, project *domain.Project, jobs []string) error {
	if err := a.compiler.Run(ctx, project, jobs); err != nil {
		if a.compiler.Failed() {
			return errors.Join(domain.ErrBuildExecutionFailed, err)
		}
		return err
	}
	return nil
}

// failureSummary names the job that failed the last run.
func (a *App) failureSummary(project *domain.Project) string {
	jobs, err := project.Jobs()
	if err == nil {
		for _, job := range jobs {
			if status, ok := a.compiler.Status(job.Name()); ok && status == batch.StatusFailed {
				return fmt.Sprintf("%s failed, waiting for changes", job.Name())
			}
		}
	}
	return "compilation failed, waiting for changes"
}

func describeChange(paths []string) string {
	if len(paths) == 1 {
		return fmt.Sprintf("%s changed, recompiling", paths[0])
	}
	return fmt.Sprintf("%d files changed, recompiling", len(paths))
}
