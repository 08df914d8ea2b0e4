package run_test

import (
	"bytes"
	"testing"

	. "github.com/onsi/gomega"

	"github.com/tablog/scaffold/scafgen/run"
)

// TestAddLib_GeneratesPlaceholders verifies addlib creates the package's
// doc.go and starter source and prints the import path.
func TestAddLib_GeneratesPlaceholders(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := projectFS()
	out := &bytes.Buffer{}

	err := run.Run([]string{"scafgen", "addlib", "store"}, workDir, fsys, &scriptedPrompter{}, out)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(content(t, fsys, "/work/internal/store/doc.go")).To(ContainSubstring("package store"))
	g.Expect(content(t, fsys, "/work/internal/store/store.go")).To(ContainSubstring("package store"))

	g.Expect(out.String()).To(ContainSubstring(`import "github.com/example/demo/internal/store"`))
	g.Expect(out.String()).To(ContainSubstring("/work/internal/store/doc.go"))
}

// TestAddLib_PromptsForName verifies the library name falls back to the
// prompter when not given on the command line.
func TestAddLib_PromptsForName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := projectFS()
	prompter := &scriptedPrompter{responses: []string{"cache"}}

	err := run.Run([]string{"scafgen", "addlib"}, workDir, fsys, prompter, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(fsys.files).To(HaveKey("/work/internal/cache/cache.go"))
}

// TestAddLib_RejectsBadPackageName verifies package name validation on the
// positional argument.
func TestAddLib_RejectsBadPackageName(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	err := run.Run([]string{"scafgen", "addlib", "Bad-Name"}, workDir, projectFS(), &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).To(HaveOccurred())
}

// TestAddLib_RefusesCollision verifies addlib won't write into a directory
// already holding Go source, and names the occupying package.
func TestAddLib_RefusesCollision(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := projectFS()
	fsys.dirs["/work/internal/store"] = true
	fsys.files["/work/internal/store/old.go"] = []byte("package storedata\n")

	out := &bytes.Buffer{}

	err := run.Run([]string{"scafgen", "addlib", "store"}, workDir, fsys, &scriptedPrompter{}, out)
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("already has Go source"))
	g.Expect(err.Error()).To(ContainSubstring("storedata"))

	// The occupied package is untouched.
	g.Expect(fsys.files).NotTo(HaveKey("/work/internal/store/store.go"))
}

// TestAddLib_CopiesSelectedFiles verifies --file copies existing sources into
// the package instead of generating placeholders.
func TestAddLib_CopiesSelectedFiles(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := projectFS()
	fsys.files["/work/util.go"] = []byte("package util\n")

	args := []string{"scafgen", "addlib", "store", "--file", "/work/util.go"}

	err := run.Run(args, workDir, fsys, &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(content(t, fsys, "/work/internal/store/util.go")).To(Equal("package util\n"))
	g.Expect(fsys.files).NotTo(HaveKey("/work/internal/store/doc.go"))
}

// TestAddLib_RejectsNonGoFile verifies --file only accepts Go sources.
func TestAddLib_RejectsNonGoFile(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := projectFS()
	fsys.files["/work/notes.txt"] = []byte("notes\n")

	args := []string{"scafgen", "addlib", "store", "--file", "/work/notes.txt"}

	err := run.Run(args, workDir, fsys, &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("not a Go source file"))
}

// TestAddLib_RequiresProject verifies addlib refuses to run outside a Go
// module.
func TestAddLib_RequiresProject(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	fsys := newFakeFS()
	fsys.dirs["/work"] = true

	err := run.Run([]string{"scafgen", "addlib", "store"}, workDir, fsys, &scriptedPrompter{}, &bytes.Buffer{})
	g.Expect(err).To(HaveOccurred())
	g.Expect(err.Error()).To(ContainSubstring("no go.mod found"))
}
