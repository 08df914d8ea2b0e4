package run_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/tablog/scaffold/internal/core"
	"github.com/tablog/scaffold/scafgen/run"
)

// TestInit_CreatesProjectFiles verifies init renders every project file with
// the chosen name and module path substituted.
func TestInit_CreatesProjectFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := newFakeFS()
	fsys.dirs["/work"] = true

	out := &bytes.Buffer{}
	args := []string{"scafgen", "init", "--name", "demo", "--module", "github.com/example/demo"}

	err := run.Run(args, workDir, fsys, &scriptedPrompter{}, out)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(content(t, fsys, "/work/go.mod")).To(ContainSubstring("module github.com/example/demo"))
	g.Expect(content(t, fsys, "/work/main.go")).To(ContainSubstring(`fmt.Println("demo: ready")`))
	g.Expect(content(t, fsys, "/work/README.md")).To(ContainSubstring("# demo"))
	g.Expect(content(t, fsys, "/work/Makefile")).To(ContainSubstring("bin/demo"))
	g.Expect(content(t, fsys, "/work/.gitignore")).To(ContainSubstring("bin/"))

	g.Expect(out.String()).To(ContainSubstring("project demo initialized"))
	g.Expect(out.String()).To(ContainSubstring("/work/go.mod"))
}

// TestInit_LeavesNoPlaceholders verifies no rendered file still carries a
// template placeholder.
func TestInit_LeavesNoPlaceholders(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := newFakeFS()
	fsys.dirs["/work"] = true

	args := []string{"scafgen", "init", "--name", "demo", "--module", "github.com/example/demo"}

	err := run.Run(args, workDir, fsys, &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())

	for name, data := range fsys.files {
		g.Expect(string(data)).NotTo(ContainSubstring("tabgame"), "placeholder left in %s", name)
	}
}

// TestInit_PromptsForMissingInputs verifies omitted flags fall back to the
// prompter, with the module path defaulting from the project name.
func TestInit_PromptsForMissingInputs(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := newFakeFS()
	fsys.dirs["/work"] = true

	// First answer names the project; the empty second answer accepts the
	// default module path.
	prompter := &scriptedPrompter{responses: []string{"demo", ""}}

	err := run.Run([]string{"scafgen", "init"}, workDir, fsys, prompter, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(content(t, fsys, "/work/go.mod")).To(ContainSubstring("module example.com/demo"))
}

// TestInit_RejectsBadName verifies name validation runs on flag input too.
func TestInit_RejectsBadName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := newFakeFS()
	fsys.dirs["/work"] = true

	err := run.Run([]string{"scafgen", "init", "--name", "9bad"}, workDir, fsys, &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).To(MatchError(core.ErrNameLeadingDigit))
	g.Expect(fsys.files).To(BeEmpty())
}

// TestInit_RejectsBadModulePath verifies module path validation on flag input.
func TestInit_RejectsBadModulePath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := newFakeFS()
	fsys.dirs["/work"] = true

	args := []string{"scafgen", "init", "--name", "demo", "--module", "not a module path"}

	err := run.Run(args, workDir, fsys, &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("invalid module path"))
}

// TestInit_FailsWhenRootMissing verifies init refuses to run outside an
// existing directory and reports the failed step.
func TestInit_FailsWhenRootMissing(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	out := &bytes.Buffer{}
	args := []string{"scafgen", "init", "--name", "demo", "--module", "github.com/example/demo"}

	err := run.Run(args, workDir, newFakeFS(), &scriptedPrompter{}, out)
	g.Expect(err).To(MatchError(core.ErrSourceMissing))
	g.Expect(out.String()).To(ContainSubstring("failed steps"))
	g.Expect(out.String()).To(ContainSubstring("validate project root"))
}
