package core

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Vars.
var (
	ErrDestinationExists = errors.New("destination already exists")
	ErrSourceMissing     = errors.New("source file does not exist")
)

// Interfaces

// FileSystem is the seam between the tool and the disk, so commands can be
// tested against an in-memory double.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Rename(oldpath, newpath string) error
	Glob(pattern string) ([]string, error)
	Exists(name string) bool
	IsDir(name string) bool
}

// Functions - Public

// CopyFile copies src to dst, creating dst's parent directories as needed.
// An existing dst is an error unless overwrite is set.
func CopyFile(fsys FileSystem, src, dst string, overwrite bool) error {
	if !fsys.Exists(src) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}

	if fsys.Exists(dst) && !overwrite {
		return fmt.Errorf("%w: %s", ErrDestinationExists, dst)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	if err := EnsureDir(fsys, filepath.Dir(dst)); err != nil {
		return err
	}

	if err := fsys.WriteFile(dst, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	return nil
}

// EnsureDir creates the directory and any missing parents.
func EnsureDir(fsys FileSystem, path string) error {
	if err := fsys.MkdirAll(path, dirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// RenameFile moves old to new, creating new's parent directories as needed.
// An existing new path is an error unless overwrite is set.
func RenameFile(fsys FileSystem, oldPath, newPath string, overwrite bool) error {
	if !fsys.Exists(oldPath) {
		return fmt.Errorf("%w: %s", ErrSourceMissing, oldPath)
	}

	if fsys.Exists(newPath) && !overwrite {
		return fmt.Errorf("%w: %s", ErrDestinationExists, newPath)
	}

	if err := EnsureDir(fsys, filepath.Dir(newPath)); err != nil {
		return err
	}

	if err := fsys.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldPath, newPath, err)
	}

	return nil
}

// ReplaceInFile replaces every occurrence of old with new in the named file.
// A file that doesn't contain old is a warning on out, not an error.
func ReplaceInFile(fsys FileSystem, path, old, replacement string, out io.Writer) error {
	return ReplaceInFileMultiple(fsys, path, map[string]string{old: replacement}, out)
}

// ReplaceInFileMultiple applies several replacements to the named file in one
// read/write cycle. Replacements are applied in sorted key order so results
// are deterministic. Missing keys are warnings on out, not errors.
func ReplaceInFileMultiple(fsys FileSystem, path string, replacements map[string]string, out io.Writer) error {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	content := string(data)

	keys := make([]string, 0, len(replacements))
	for key := range replacements {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, old := range keys {
		if !strings.Contains(content, old) {
			fmt.Fprintf(out, "warning: %s does not contain %q, skipping replacement\n", path, old)
			continue
		}

		content = strings.ReplaceAll(content, old, replacements[old])
	}

	if err := fsys.WriteFile(path, []byte(content), filePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}

// unexported constants.
const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)
