package core

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Types

// Status is the lifecycle state of a single step.
type Status int

// Step statuses, in lifecycle order.
const (
	StatusPending Status = iota
	StatusRunning
	StatusSuccess
	StatusFailed
	StatusSkipped
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusRunning:
		return "running"
	case StatusSuccess:
		return "success"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Context carries the state shared between steps of a single command run.
type Context struct {
	ProjectRoot string
	ProjectName string
	ModulePath  string
	LibName     string
	SrcFiles    []string
	Created     []string // files written during the run, in order
	Snippet     string   // final snippet to show the user, if any
}

// Step is one named unit of work in a Runner pipeline.
// Check runs before Run; a Check failure fails the step without running it.
// A nil Check or Run is treated as passing.
type Step struct {
	Name        string
	Description string
	Optional    bool
	Check       func(*Context) error
	Run         func(*Context) error

	status Status
	err    error
}

// Err returns the error that failed the step, if any.
func (s *Step) Err() error {
	return s.err
}

// Status returns the step's current lifecycle state.
func (s *Step) Status() Status {
	return s.status
}

// execute moves the step through its lifecycle and returns whether it succeeded.
func (s *Step) execute(ctx *Context) bool {
	s.status = StatusRunning

	if s.Check != nil {
		if err := s.Check(ctx); err != nil {
			s.status = StatusFailed
			s.err = err

			return false
		}
	}

	if s.Run != nil {
		if err := s.Run(ctx); err != nil {
			s.status = StatusFailed
			s.err = err

			return false
		}
	}

	s.status = StatusSuccess

	return true
}

// Runner executes registered steps in order against a shared Context.
type Runner struct {
	steps []*Step
	ctx   *Context
	out   io.Writer
}

// NewRunner creates a runner over the given context, reporting progress to out.
func NewRunner(ctx *Context, out io.Writer) *Runner {
	return &Runner{ctx: ctx, out: out}
}

// Add registers a step. It returns the runner for chaining.
func (r *Runner) Add(step *Step) *Runner {
	r.steps = append(r.steps, step)
	return r
}

// Context returns the shared context the steps run against.
func (r *Runner) Context() *Context {
	return r.ctx
}

// Execute runs all registered steps in order and reports a summary.
// A failing optional step is marked skipped and execution continues. A failing
// required step stops execution when stopOnError is set. Execute returns true
// iff no step failed.
func (r *Runner) Execute(stopOnError bool) bool {
	fmt.Fprintf(r.out, "running %d steps...\n\n", len(r.steps))

	var succeeded, failed, skipped int

	for i, step := range r.steps {
		fmt.Fprintf(r.out, "[%d/%d] %s\n", i+1, len(r.steps), step.Name)

		if step.Description != "" {
			fmt.Fprintf(r.out, "  %s\n", step.Description)
		}

		if step.execute(r.ctx) {
			succeeded++

			fmt.Fprintf(r.out, "  %s %s\n\n", okMark(), step.Name)

			continue
		}

		if step.Optional {
			skipped++
			step.status = StatusSkipped

			fmt.Fprintf(r.out, "  %s %s (optional, skipping): %v\n\n", skipMark(), step.Name, step.err)

			continue
		}

		failed++

		fmt.Fprintf(r.out, "  %s %s: %v\n\n", failMark(), step.Name, step.err)

		if stopOnError {
			fmt.Fprintf(r.out, "aborted after %d/%d steps\n", i+1, len(r.steps))
			break
		}
	}

	fmt.Fprintf(r.out, "summary: %d succeeded, %d failed, %d skipped\n", succeeded, failed, skipped)

	return failed == 0
}

// Failed returns the steps that failed, in registration order.
func (r *Runner) Failed() []*Step {
	var failed []*Step

	for _, step := range r.steps {
		if step.status == StatusFailed {
			failed = append(failed, step)
		}
	}

	return failed
}

// StatusOf returns the status of the named step, and whether it exists.
func (r *Runner) StatusOf(name string) (Status, bool) {
	for _, step := range r.steps {
		if step.Name == name {
			return step.status, true
		}
	}

	return StatusPending, false
}

// Functions - Private

// failMark returns the glyph for a failed step.
func failMark() string {
	return color.New(color.FgRed).Sprint("✗")
}

// okMark returns the glyph for a successful step.
func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

// skipMark returns the glyph for a skipped optional step.
func skipMark() string {
	return color.New(color.FgYellow).Sprint("⊘")
}
