package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.OutputDir = (*OutputDir)(nil)

// OutputDir manages the directory compiled shaders are written to.
type OutputDir struct{}

// NewOutputDir creates a new OutputDir.
func NewOutputDir() *OutputDir {
	return &OutputDir{}
}

// EnsureDir creates path and any missing parents.
// An existing directory is left untouched and reported as not created.
func (d *OutputDir) EnsureDir(path string) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return false, nil
	case err == nil:
		return false, zerr.With(
			zerr.Wrap(errors.New("path exists and is not a directory"), domain.ErrOutputDirCreateFailed.Error()),
			"path", path,
		)
	case !errors.Is(err, iofs.ErrNotExist):
		return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
	}

	if err := os.MkdirAll(path, domain.DirPerm); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", path)
	}
	return true, nil
}

// Clean removes path and everything below it. A missing path is not an error.
func (d *OutputDir) Clean(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCleanFailed.Error()), "path", path)
	}
	return nil
}
