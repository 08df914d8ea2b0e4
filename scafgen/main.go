// scaffold/scafgen is a tool to bootstrap Go projects from templates.
// `scafgen init` lays down a fresh project skeleton in the current directory,
// `scafgen addlib` adds a library package under internal/, and
// `scafgen component add` installs a registered component (example test
// suites, lint config, CI workflow) into an existing project.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tablog/scaffold/scafgen/run"
)

// main is the entry point of the scafgen tool.
func main() {
	if os.Args == nil {
		return
	}

	prompter := &stdinPrompter{reader: bufio.NewReader(os.Stdin)}

	err := run.Run(os.Args, os.Getwd, &realFileSystem{}, prompter, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// realFileSystem implements core.FileSystem using the os package.
type realFileSystem struct{}

// Exists reports whether the named path exists.
func (fs *realFileSystem) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// Glob returns the names of all files matching pattern.
func (fs *realFileSystem) Glob(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob failed for pattern %s: %w", pattern, err)
	}

	return matches, nil
}

// IsDir reports whether the named path exists and is a directory.
func (fs *realFileSystem) IsDir(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

// MkdirAll creates the named directory and any missing parents.
func (fs *realFileSystem) MkdirAll(path string, perm os.FileMode) error {
	err := os.MkdirAll(path, perm)
	if err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}

	return nil
}

// ReadFile reads the file named by name and returns the contents.
func (fs *realFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", name, err)
	}

	return data, nil
}

// Rename moves oldpath to newpath.
func (fs *realFileSystem) Rename(oldpath, newpath string) error {
	err := os.Rename(oldpath, newpath)
	if err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", oldpath, newpath, err)
	}

	return nil
}

// WriteFile writes data to the file named by name.
func (fs *realFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	err := os.WriteFile(name, data, perm)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %w", name, err)
	}

	return nil
}

// stdinPrompter implements run.Prompter on standard input.
type stdinPrompter struct {
	reader *bufio.Reader
}

// Ask prompts until it gets a non-empty (or defaulted) value that passes
// validation.
func (p *stdinPrompter) Ask(prompt, defaultValue string, validate func(string) error) (string, error) {
	for {
		if defaultValue != "" {
			fmt.Printf("%s [%s]: ", prompt, defaultValue)
		} else {
			fmt.Printf("%s: ", prompt)
		}

		line, err := p.reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}

		value := strings.TrimSpace(line)

		if value == "" {
			if defaultValue != "" {
				return defaultValue, nil
			}

			fmt.Println("input must not be empty, try again")

			continue
		}

		if validate != nil {
			if err := validate(value); err != nil {
				fmt.Printf("invalid input: %v\n", err)
				continue
			}
		}

		return value, nil
	}
}
