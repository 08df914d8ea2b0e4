// Package scaffold provides the building blocks behind the scafgen tool: an
// ordered step runner with optional-step and abort semantics, a component
// registry discovered from a template tree, and filesystem helpers driven
// through a seam so commands stay testable.
//
// This is the public API entry point. Implementation lives in internal/core.
package scaffold

import (
	"io"
	"io/fs"

	"github.com/tablog/scaffold/internal/core"
)

// Component is a unit of project functionality discovered from a template tree.
type Component = core.Component

// Context carries the state shared between steps of a single command run.
type Context = core.Context

// Example is one installable example payload of a component.
type Example = core.Example

// FileSystem is the seam between the tool and the disk.
type FileSystem = core.FileSystem

// InstallFile maps a component payload file to its place in the target project.
type InstallFile = core.InstallFile

// Requirement is a module the target project needs once a component is added.
type Requirement = core.Requirement

// Runner executes registered steps in order against a shared Context.
type Runner = core.Runner

// Status is the lifecycle state of a single step.
type Status = core.Status

// Step is one named unit of work in a Runner pipeline.
type Step = core.Step

// Step statuses, re-exported from internal/core.
const (
	StatusPending = core.StatusPending
	StatusRunning = core.StatusRunning
	StatusSuccess = core.StatusSuccess
	StatusFailed  = core.StatusFailed
	StatusSkipped = core.StatusSkipped
)

// Discover loads every component under dir in fsys.
func Discover(fsys fs.FS, dir string, warn io.Writer) ([]Component, error) {
	return core.Discover(fsys, dir, warn)
}

// Lookup returns the named component from the discovered set.
func Lookup(components []Component, name string) (Component, error) {
	return core.Lookup(components, name)
}

// NewRunner creates a runner over the given context, reporting progress to out.
func NewRunner(ctx *Context, out io.Writer) *Runner {
	return core.NewRunner(ctx, out)
}

// ValidatePackageName checks that name is usable as a Go package name.
func ValidatePackageName(name string) error {
	return core.ValidatePackageName(name)
}

// ValidateProjectName checks that name is a usable project name.
func ValidateProjectName(name string) error {
	return core.ValidateProjectName(name)
}
