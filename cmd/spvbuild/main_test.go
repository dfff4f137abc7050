package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/spvbuild/internal/adapters/telemetry"
	"go.trai.ch/spvbuild/internal/app"
	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/spvbuild/internal/core/ports/mocks"
	"go.trai.ch/spvbuild/internal/engine/batch"
	"go.uber.org/mock/gomock"
)

type mainFixture struct {
	loader    *mocks.MockConfigLoader
	locator   *mocks.MockToolchainLocator
	outputDir *mocks.MockOutputDir
	executor  *mocks.MockExecutor
	verifier  *mocks.MockVerifier
	logger    *mocks.MockLogger
	shutdowns int
}

func newMainFixture(t *testing.T) *mainFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	return &mainFixture{
		loader:    mocks.NewMockConfigLoader(ctrl),
		locator:   mocks.NewMockToolchainLocator(ctrl),
		outputDir: mocks.NewMockOutputDir(ctrl),
		executor:  mocks.NewMockExecutor(ctrl),
		verifier:  mocks.NewMockVerifier(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
}

func (f *mainFixture) provider(ctrl *gomock.Controller) ComponentProvider {
	compiler := batch.NewCompiler(f.locator, f.outputDir, f.executor, f.verifier, telemetry.NewNoOpTracer())
	application := app.New(f.loader, compiler, f.outputDir, mocks.NewMockHasher(ctrl), f.logger,
		func() (ports.Watcher, error) { return mocks.NewMockWatcher(ctrl), nil })

	return func(context.Context) (*app.Components, func(), error) {
		return app.NewComponents(application, f.logger, func(context.Context) error {
			f.shutdowns++
			return nil
		}), func() {}, nil
	}
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMainFixture(t)

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), f.provider(ctrl))
	assert.Equal(t, 0, exitCode)
	assert.Equal(t, 1, f.shutdowns)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ConfigurationError verifies that configuration errors are logged and exit with 1.
func TestRun_ConfigurationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMainFixture(t)

	f.loader.EXPECT().Load(".").Return(domain.NewProject("/work/game"), nil)
	f.locator.EXPECT().Locate().Return(domain.Toolchain{}, domain.ErrToolchainNotConfigured)
	f.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, domain.ErrToolchainNotConfigured)
	})

	exitCode := run(context.Background(), []string{"compile"}, new(bytes.Buffer), f.provider(ctrl))
	assert.Equal(t, 1, exitCode)
	assert.Equal(t, 1, f.shutdowns)
}

// TestRun_BuildFailureIsNotLoggedTwice verifies that a failed job exits with 1 without logging.
func TestRun_BuildFailureIsNotLoggedTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	f := newMainFixture(t)

	f.loader.EXPECT().Load(".").Return(domain.NewProject("/work/game"), nil)
	f.locator.EXPECT().Locate().Return(domain.Toolchain{Root: "/opt/vulkan"}, nil)
	f.outputDir.EXPECT().EnsureDir("/work/game/shaders/bin").Return(false, nil)
	f.executor.EXPECT().Execute(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("exit status 1"))
	f.logger.EXPECT().Error(gomock.Any()).Times(0)

	exitCode := run(context.Background(), []string{"compile"}, new(bytes.Buffer), f.provider(ctrl))
	assert.Equal(t, 1, exitCode)
}

// TestRun_ShutdownError verifies that a failing flush turns a successful run into a failure.
func TestRun_ShutdownError(t *testing.T) {
	ctrl := gomock.NewController(t)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Error(gomock.Any())

	provider := func(context.Context) (*app.Components, func(), error) {
		return app.NewComponents(nil, logger, func(context.Context) error {
			return errors.New("flush failed")
		}), func() {}, nil
	}

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), provider)
	assert.Equal(t, 1, exitCode)
}
