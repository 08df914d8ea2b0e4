package run_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Vars.
var (
	errNoMoreResponses = errors.New("prompter ran out of scripted responses")
	errNotFound        = errors.New("file not found")
)

// fakeFS is an in-memory run-side double for core.FileSystem.
type fakeFS struct {
	files map[string][]byte
	dirs  map[string]bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string][]byte{}, dirs: map[string]bool{}}
}

func (f *fakeFS) Exists(name string) bool {
	_, ok := f.files[name]
	return ok || f.dirs[name]
}

func (f *fakeFS) Glob(pattern string) ([]string, error) {
	var matches []string

	for name := range f.files {
		ok, err := filepath.Match(pattern, name)
		if err != nil {
			return nil, err
		}

		if ok {
			matches = append(matches, name)
		}
	}

	return matches, nil
}

func (f *fakeFS) IsDir(name string) bool {
	return f.dirs[name]
}

func (f *fakeFS) MkdirAll(path string, _ os.FileMode) error {
	for dir := path; dir != "." && dir != "/" && dir != ""; dir = filepath.Dir(dir) {
		f.dirs[dir] = true
	}

	return nil
}

func (f *fakeFS) ReadFile(name string) ([]byte, error) {
	data, ok := f.files[name]
	if !ok {
		return nil, errNotFound
	}

	return data, nil
}

func (f *fakeFS) Rename(oldpath, newpath string) error {
	data, ok := f.files[oldpath]
	if !ok {
		return errNotFound
	}

	delete(f.files, oldpath)
	f.files[newpath] = data

	return nil
}

func (f *fakeFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.files[name] = data
	return nil
}

// scriptedPrompter replays canned answers; an empty answer takes the default,
// matching the interactive prompter's behavior.
type scriptedPrompter struct {
	responses []string
	next      int
}

func (p *scriptedPrompter) Ask(_, defaultValue string, validate func(string) error) (string, error) {
	if p.next >= len(p.responses) {
		return "", errNoMoreResponses
	}

	value := p.responses[p.next]
	p.next++

	if value == "" {
		value = defaultValue
	}

	if validate != nil {
		if err := validate(value); err != nil {
			return "", err
		}
	}

	return value, nil
}

// content returns the named fake file's content, failing the test when the
// file wasn't created.
func content(t *testing.T, fsys *fakeFS, name string) string {
	t.Helper()

	data, ok := fsys.files[name]
	if !ok {
		t.Fatalf("expected %s to be created; have %s", name, fileNames(fsys))
	}

	return string(data)
}

// fileNames lists the files in the fake filesystem for failure messages.
func fileNames(fsys *fakeFS) string {
	names := make([]string, 0, len(fsys.files))
	for name := range fsys.files {
		names = append(names, name)
	}

	return strings.Join(names, ", ")
}

// workDir is the getwd stub used by all run tests.
func workDir() (string, error) {
	return "/work", nil
}

// projectFS returns a fake filesystem holding an initialized project at
// /work.
func projectFS() *fakeFS {
	fsys := newFakeFS()
	fsys.dirs["/work"] = true
	fsys.files["/work/go.mod"] = []byte("module github.com/example/demo\n\ngo 1.25\n")

	return fsys
}
