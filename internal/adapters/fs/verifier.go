package fs

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks that compiled outputs were written.
type Verifier struct{}

// NewVerifier creates a new Verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyOutputs reports whether every output exists as a regular file.
// Relative outputs are resolved against root.
func (v *Verifier) VerifyOutputs(root string, outputs []string) (bool, error) {
	for _, output := range outputs {
		path := output
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, output)
		}

		info, err := os.Stat(path)
		if errors.Is(err, iofs.ErrNotExist) {
			return false, nil
		}
		if err != nil {
			return false, zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
		}
		if !info.Mode().IsRegular() {
			return false, nil
		}
	}
	return true, nil
}
