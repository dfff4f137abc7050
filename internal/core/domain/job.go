package domain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const jobNamePrefix = "shader"

// Job maps one (kind, dimension) pair to a source file and a compiled output file.
type Job struct {
	Kind      ShaderKind
	Dimension Dimension
	Source    string
	Output    string
}

// JobName returns the file name shared by a job's source and output stem, e.g. "shader2D.vert".
func JobName(kind ShaderKind, dim Dimension) string {
	return jobNamePrefix + string(dim) + "." + string(kind)
}

// NewJob builds the job for kind and dim within layout.
func NewJob(layout Layout, kind ShaderKind, dim Dimension) Job {
	name := JobName(kind, dim)
	return Job{
		Kind:      kind,
		Dimension: dim,
		Source:    filepath.Join(layout.ShaderDir, name),
		Output:    filepath.Join(layout.OutputDir, name+SPIRVExtension),
	}
}

// Name returns the job's name, e.g. "shader3D.frag".
func (j Job) Name() string {
	return JobName(j.Kind, j.Dimension)
}

// Invocation returns the compiler run for this job: compiler, flags, source, "-o", output.
// The toolchain's binary directory is appended to the search path of this invocation only.
func (j Job) Invocation(compiler string, flags []string, toolchain Toolchain) *Invocation {
	if compiler == "" {
		compiler = DefaultCompiler
	}
	command := make([]string, 0, len(flags)+4)
	command = append(command, compiler)
	command = append(command, flags...)
	command = append(command, j.Source, "-o", j.Output)
	return &Invocation{
		Label:      j.Name(),
		Command:    command,
		SearchPath: []string{toolchain.BinDir()},
	}
}

// PlanJobs enumerates the variant's jobs in their fixed order.
//
// The full variant iterates kinds (vertex, fragment) in the outer loop and dimensions
// (2D, 3D) in the inner loop. The reduced variant yields the 2D vertex and fragment jobs.
func PlanJobs(layout Layout, variant Variant) ([]Job, error) {
	switch variant {
	case VariantFull, "":
		jobs := make([]Job, 0, len(ShaderKinds)*len(Dimensions))
		for _, kind := range ShaderKinds {
			for _, dim := range Dimensions {
				jobs = append(jobs, NewJob(layout, kind, dim))
			}
		}
		return jobs, nil
	case VariantReduced:
		return []Job{
			NewJob(layout, KindVertex, Dim2D),
			NewJob(layout, KindFragment, Dim2D),
		}, nil
	default:
		return nil, zerr.With(ErrInvalidVariant, "variant", string(variant))
	}
}

// ParseJobName splits a job name such as "shader3D.frag" into its kind and dimension.
func ParseJobName(name string) (ShaderKind, Dimension, error) {
	stem, ext, ok := strings.Cut(name, ".")
	dim, hasPrefix := strings.CutPrefix(stem, jobNamePrefix)
	if !ok || !hasPrefix {
		return "", "", zerr.With(ErrJobNotFound, "job", name)
	}

	kind, err := ParseShaderKind(ext)
	if err != nil {
		return "", "", zerr.With(err, "job", name)
	}
	dimension, err := ParseDimension(dim)
	if err != nil {
		return "", "", zerr.With(err, "job", name)
	}
	return kind, dimension, nil
}

// SelectJobs filters jobs down to the named ones, keeping enumeration order.
// An empty names list selects every job. A malformed name, or one outside the job list,
// fails before anything is selected.
func SelectJobs(jobs []Job, names []string) ([]Job, error) {
	if len(names) == 0 {
		return jobs, nil
	}

	for _, name := range names {
		kind, dim, err := ParseJobName(name)
		if err != nil {
			return nil, err
		}
		if !slices.ContainsFunc(jobs, func(j Job) bool { return j.Kind == kind && j.Dimension == dim }) {
			return nil, zerr.With(ErrJobNotFound, "job", name)
		}
	}

	selected := make([]Job, 0, len(names))
	for _, job := range jobs {
		if slices.Contains(names, job.Name()) {
			selected = append(selected, job)
		}
	}
	return selected, nil
}

// JobNames returns the names of jobs in order.
func JobNames(jobs []Job) []string {
	names := make([]string, len(jobs))
	for i, job := range jobs {
		names[i] = job.Name()
	}
	return names
}

// JobOutputs returns the output paths of jobs in order.
func JobOutputs(jobs []Job) []string {
	outputs := make([]string, len(jobs))
	for i, job := range jobs {
		outputs[i] = job.Output
	}
	return outputs
}
