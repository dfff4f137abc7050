package app_test

import (
	"context"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/spvbuild/internal/adapters/telemetry"
	"go.trai.ch/spvbuild/internal/app"
	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/spvbuild/internal/core/ports/mocks"
	"go.trai.ch/spvbuild/internal/engine/batch"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type appFixture struct {
	loader    *mocks.MockConfigLoader
	locator   *mocks.MockToolchainLocator
	outputDir *mocks.MockOutputDir
	executor  *mocks.MockExecutor
	verifier  *mocks.MockVerifier
	hasher    *mocks.MockHasher
	logger    *mocks.MockLogger
	watcher   *mocks.MockWatcher
	project   *domain.Project
	app       *app.App
}

func newAppFixture(t *testing.T, root string) *appFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &appFixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		locator:   mocks.NewMockToolchainLocator(ctrl),
		outputDir: mocks.NewMockOutputDir(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		verifier:  mocks.NewMockVerifier(ctrl),
		hasher:    mocks.NewMockHasher(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		watcher:   mocks.NewMockWatcher(ctrl),
		project:   domain.NewProject(root),
	}

	compiler := batch.NewCompiler(f.locator, f.outputDir, f.executor, f.verifier, telemetry.NewNoOpTracer())
	f.app = app.New(f.loader, compiler, f.outputDir, f.hasher, f.logger, func() (ports.Watcher, error) {
		return f.watcher, nil
	})
	return f
}

// expectHealthyRun accepts any number of successful runs.
func (f *appFixture) expectHealthyRun() {
	f.locator.EXPECT().Locate().Return(domain.Toolchain{Root: "/opt/vulkan"}, nil).AnyTimes()
	f.outputDir.EXPECT().EnsureDir(gomock.Any()).Return(false, nil).AnyTimes()
	f.verifier.EXPECT().VerifyOutputs(gomock.Any(), gomock.Any()).Return(true, nil).AnyTimes()
}

func TestApp_Compile(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.expectHealthyRun()
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

	require.NoError(t, f.app.Compile(context.Background(), app.CompileOptions{}))
}

func TestApp_Compile_SelectedJobsWithRoot(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load("/work/game").Return(f.project, nil)
	f.expectHealthyRun()
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	err := f.app.Compile(context.Background(), app.CompileOptions{
		Options: app.Options{Root: "/work/game"},
		Jobs:    []string{"shader2D.frag"},
	})
	require.NoError(t, err)
}

func TestApp_Compile_JobFailure(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.expectHealthyRun()
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("exit status 1")).Times(1)

	err := f.app.Compile(context.Background(), app.CompileOptions{})
	require.ErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorContains(t, err, domain.ErrCompileFailed.Error())
}

func TestApp_Compile_ToolchainMissing(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.locator.EXPECT().Locate().Return(domain.Toolchain{}, domain.ErrToolchainNotConfigured)

	err := f.app.Compile(context.Background(), app.CompileOptions{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrBuildExecutionFailed)
	assert.ErrorIs(t, err, domain.ErrToolchainNotConfigured)
}

func TestApp_Compile_ConfigError(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load(".").Return(nil, zerr.New(domain.ErrConfigParseFailed.Error()))

	err := f.app.Compile(context.Background(), app.CompileOptions{})
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to load configuration")
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestApp_List(t *testing.T) {
	root := t.TempDir()
	f := newAppFixture(t, root)
	f.project.Variant = domain.VariantReduced

	require.NoError(t, os.MkdirAll(f.project.Layout.OutputDir, 0o750))
	existing := filepath.Join(f.project.Layout.OutputDir, "shader2D.vert.spv")
	require.NoError(t, os.WriteFile(existing, []byte("spirv"), 0o600))

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.hasher.EXPECT().ComputeFileHash(existing).Return("0123456789abcdef", nil)

	artifacts, err := f.app.List(context.Background(), app.Options{})
	require.NoError(t, err)
	require.Len(t, artifacts, 2)

	assert.Equal(t, "shader2D.vert", artifacts[0].Job.Name())
	assert.True(t, artifacts[0].Exists)
	assert.Equal(t, int64(5), artifacts[0].Size)
	assert.Equal(t, "0123456789abcdef", artifacts[0].Digest)

	assert.Equal(t, "shader2D.frag", artifacts[1].Job.Name())
	assert.False(t, artifacts[1].Exists)
	assert.Empty(t, artifacts[1].Digest)
}

func TestApp_Clean(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.logger.EXPECT().Info(gomock.Any()).Times(2)
	f.outputDir.EXPECT().Clean(f.project.Layout.OutputDir).Return(nil)

	require.NoError(t, f.app.Clean(context.Background(), app.Options{}))
}

func TestApp_Clean_Error(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.logger.EXPECT().Info(gomock.Any()).Times(1)
	f.outputDir.EXPECT().Clean(gomock.Any()).Return(zerr.New(domain.ErrOutputDirCleanFailed.Error()))

	err := f.app.Clean(context.Background(), app.Options{})
	assert.ErrorContains(t, err, domain.ErrOutputDirCleanFailed.Error())
}

func TestApp_Watch_ToolchainMissing(t *testing.T) {
	f := newAppFixture(t, "/work/game")

	// The watcher is never started.
	f.loader.EXPECT().Load(".").Return(f.project, nil)
	f.locator.EXPECT().Locate().Return(domain.Toolchain{}, domain.ErrToolchainNotConfigured)

	err := f.app.Watch(context.Background(), app.Options{})
	assert.ErrorIs(t, err, domain.ErrToolchainNotConfigured)
}

// eventsAfter yields paths one by one, then keeps the stream open for linger.
func eventsAfter(linger time.Duration, paths ...string) iter.Seq[ports.WatchEvent] {
	return func(yield func(ports.WatchEvent) bool) {
		for _, p := range paths {
			if !yield(ports.WatchEvent{Path: p, Operation: ports.OpWrite}) {
				return
			}
		}
		time.Sleep(linger)
	}
}

func TestApp_Watch_RecompilesOnChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newAppFixture(t, "/work/game")
		f.project.Variant = domain.VariantReduced
		f.app.WithDebounceWindow(10 * time.Millisecond)

		f.loader.EXPECT().Load(".").Return(f.project, nil)
		f.expectHealthyRun()
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		// Initial compile plus one coalesced rebuild.
		f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(4)

		layout := f.project.Layout
		f.watcher.EXPECT().Start(gomock.Any(), layout.ShaderDir, layout.OutputDir).Return(nil)
		f.watcher.EXPECT().Events().Return(eventsAfter(time.Second,
			filepath.Join(layout.ShaderDir, "shader2D.vert"),
			filepath.Join(layout.ShaderDir, "shader2D.frag"),
		))
		f.watcher.EXPECT().Stop().Return(nil)

		require.NoError(t, f.app.Watch(context.Background(), app.Options{}))
	})
}

func TestApp_Watch_ContinuesAfterFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newAppFixture(t, "/work/game")
		f.project.Variant = domain.VariantReduced
		f.app.WithDebounceWindow(10 * time.Millisecond)

		f.loader.EXPECT().Load(".").Return(f.project, nil)
		f.expectHealthyRun()
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()

		gomock.InOrder(
			// Initial compile fails on the first job.
			f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(errors.New("exit status 1")),
			f.logger.EXPECT().Warn("shader2D.vert failed, waiting for changes"),
			// The rebuild after the fix succeeds.
			f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil).Times(2),
		)

		f.watcher.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.watcher.EXPECT().Events().Return(eventsAfter(time.Second, "/work/game/shaders/shader2D.vert"))
		f.watcher.EXPECT().Stop().Return(nil)

		require.NoError(t, f.app.Watch(context.Background(), app.Options{}))
	})
}

func TestApp_Watch_StopsOnCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newAppFixture(t, "/work/game")
		f.project.Variant = domain.VariantReduced

		f.loader.EXPECT().Load(".").Return(f.project, nil)
		f.expectHealthyRun()
		f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
		f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		ctx, cancel := context.WithCancel(context.Background())
		f.watcher.EXPECT().Start(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.watcher.EXPECT().Events().Return(func(yield func(ports.WatchEvent) bool) {
			cancel()
			time.Sleep(time.Hour)
		})
		f.watcher.EXPECT().Stop().Return(nil)

		require.NoError(t, f.app.Watch(ctx, app.Options{}))
	})
}

func TestComponents_Shutdown(t *testing.T) {
	var nilComponents *app.Components
	require.NoError(t, nilComponents.Shutdown(context.Background()))

	called := false
	c := app.NewComponents(nil, nil, func(context.Context) error {
		called = true
		return nil
	})
	require.NoError(t, c.Shutdown(context.Background()))
	assert.True(t, called)
}
