// Package linear provides a synchronous, line-buffered renderer for compiler runs.
package linear

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/spvbuild/internal/core/ports"
	"go.trai.ch/spvbuild/internal/ui/output"
	"go.trai.ch/spvbuild/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer with chronological, job-prefixed lines.
// Status lines go to stderr; compiler output goes to stdout.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu   sync.Mutex
	jobs map[string]*jobState // spanID -> job state
}

type jobState struct {
	name      string
	startTime time.Time
	pending   []byte
}

// NewRenderer creates a new Renderer. Nil writers default to the process streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, func() termenv.Profile { return output.ProfileFor(stderr) }),
		jobs:   make(map[string]*jobState),
	}
}

// Stop flushes output of jobs that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, job := range r.jobs {
		r.flushLocked(job)
	}
	clear(r.jobs)
	return nil
}

// OnPlanEmit prints the jobs about to run.
func (r *Renderer) OnPlanEmit(jobs []string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Compiling %d shader(s): %s\n", len(jobs), strings.Join(jobs, ", "))
}

// OnTaskStart prints a job start line.
func (r *Renderer) OnTaskStart(spanID, _ /* parentID */, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.jobs[spanID] = &jobState{name: name, startTime: startTime}
	_, _ = fmt.Fprintf(r.stderr, "%s Compiling...\n", r.prefix(name))
}

// OnTaskLog prints every complete line of data with the job prefix.
// A trailing partial line is held until more data or completion arrives.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[spanID]
	if !ok {
		return
	}

	job.pending = append(job.pending, data...)
	for {
		i := bytes.IndexByte(job.pending, '\n')
		if i < 0 {
			break
		}
		r.printLineLocked(job.name, job.pending[:i])
		job.pending = job.pending[i+1:]
	}
}

// OnTaskComplete flushes held output and prints the job result.
func (r *Renderer) OnTaskComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[spanID]
	if !ok {
		return
	}
	delete(r.jobs, spanID)

	r.flushLocked(job)

	elapsed := endTime.Sub(job.startTime).Round(time.Millisecond)
	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(r.output.Color(string(style.Failed))).String()
		_, _ = fmt.Fprintf(r.stderr, "%s %s Failed after %v: %v\n", r.prefix(job.name), symbol, elapsed, err)
		return
	}

	symbol := r.output.String(style.Check).Foreground(r.output.Color(string(style.Compiled))).String()
	_, _ = fmt.Fprintf(r.stderr, "%s %s Compiled in %v\n", r.prefix(job.name), symbol, elapsed)
}

func (r *Renderer) prefix(name string) string {
	return r.output.String("[" + name + "]").Faint().String()
}

// flushLocked prints a held partial line. Must be called with r.mu held.
func (r *Renderer) flushLocked(job *jobState) {
	if len(job.pending) > 0 {
		r.printLineLocked(job.name, job.pending)
		job.pending = nil
	}
}

// printLineLocked prints one line of compiler output. Must be called with r.mu held.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}
	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, line)
}
