// Package config provides the configuration loader for spvbuild.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-shellwords"
	"github.com/mitchellh/go-homedir"
	"go.trai.ch/spvbuild/internal/core/domain"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using an optional YAML file in the project root.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load builds the project rooted at root.
// Without a config file the default layout, variant and compiler are used.
func (l *Loader) Load(root string) (*domain.Project, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "root", root)
	}

	configPath := filepath.Join(absRoot, domain.ConfigFileName)
	data, err := os.ReadFile(configPath) //nolint:gosec // path is derived from the project root
	if errors.Is(err, iofs.ErrNotExist) {
		return domain.NewProject(absRoot), nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	var file Projectfile
	if err := decodeStrict(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	return l.buildProject(absRoot, configPath, &file)
}

func (l *Loader) buildProject(root, configPath string, file *Projectfile) (*domain.Project, error) {
	if file.Version != "" && file.Version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("unknown version %q in %s, reading it as version %s",
			file.Version, domain.ConfigFileName, SupportedVersion))
	}

	variant, err := domain.ParseVariant(strings.TrimSpace(file.Variant))
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	shaders, err := expandHome(file.Shaders, "shaders", configPath)
	if err != nil {
		return nil, err
	}
	output, err := expandHome(file.Output, "output", configPath)
	if err != nil {
		return nil, err
	}

	project := domain.NewProject(root)
	project.Variant = variant
	project.Layout = domain.NewLayout(root, shaders, output)

	if compiler := strings.TrimSpace(file.Compiler); compiler != "" {
		if project.Compiler, err = expandHome(compiler, "compiler", configPath); err != nil {
			return nil, err
		}
	}

	if flags := strings.TrimSpace(file.Flags); flags != "" {
		args, err := shellwords.Parse(flags)
		if err != nil {
			return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()),
				"path", configPath), "field", "flags")
		}
		if len(args) > 0 {
			project.CompilerFlags = args
		}
	}

	return project, nil
}

// expandHome resolves a leading "~" in a configured path to the user's home directory.
func expandHome(value, field, configPath string) (string, error) {
	expanded, err := homedir.Expand(strings.TrimSpace(value))
	if err != nil {
		return "", zerr.With(zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()),
			"path", configPath), "field", field)
	}
	return expanded, nil
}

// decodeStrict unmarshals a single YAML document, rejecting unknown keys.
// An empty document decodes to the zero value.
func decodeStrict(data []byte, out *Projectfile) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
