package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Vars.
var (
	ErrComponentNotFound = errors.New("component not found")
	ErrExampleNotFound   = errors.New("example not found")
	ErrNoExampleSupport  = errors.New("component does not support examples")
)

// Types

// Example is one installable example payload of a component.
type Example struct {
	Name        string `toml:"name"`
	DisplayName string `toml:"display_name"`
	Destination string `toml:"destination"`
}

// InstallFile maps a component payload file to its place in the target project.
type InstallFile struct {
	Source      string `toml:"source"`
	Destination string `toml:"destination"`
}

// Requirement is a module the target project needs once the component is added.
type Requirement struct {
	Path    string `toml:"path"`
	Version string `toml:"version"`
}

// Component is a unit of project functionality discovered from a template
// tree: metadata from meta.toml plus the payload files next to it.
type Component struct {
	Name            string        `toml:"name"`
	DisplayName     string        `toml:"display_name"`
	Description     string        `toml:"description"`
	Category        string        `toml:"category"`
	SupportsExample bool          `toml:"supports_example"`
	Examples        []Example     `toml:"examples"`
	Files           []InstallFile `toml:"files"`
	Requires        []Requirement `toml:"requires"`

	dir  string
	fsys fs.FS
}

// Example returns the named example configuration.
func (c Component) Example(name string) (Example, error) {
	if !c.SupportsExample {
		return Example{}, fmt.Errorf("%w: %s", ErrNoExampleSupport, c.Name)
	}

	for _, example := range c.Examples {
		if example.Name == name {
			return example, nil
		}
	}

	return Example{}, fmt.Errorf("%w: %q in component %s", ErrExampleNotFound, name, c.Name)
}

// ExampleDestination returns the directory in the target project that the
// named example's files belong in.
func (c Component) ExampleDestination(projectRoot, exampleName string) (string, error) {
	example, err := c.Example(exampleName)
	if err != nil {
		return "", err
	}

	destination := example.Destination
	if destination == "" {
		destination = "examples"
	}

	return path.Join(projectRoot, destination, example.Name), nil
}

// ExampleFiles returns the payload files of the named example, as paths
// relative to the example's directory.
func (c Component) ExampleFiles(exampleName string) ([]string, error) {
	if _, err := c.Example(exampleName); err != nil {
		return nil, err
	}

	exampleDir := path.Join(c.dir, "example", exampleName)

	var files []string

	err := fs.WalkDir(c.fsys, exampleDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() {
			files = append(files, strings.TrimPrefix(p, exampleDir+"/"))
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk example %s of component %s: %w", exampleName, c.Name, err)
	}

	sort.Strings(files)

	return files, nil
}

// ReadExampleFile returns the contents of one example payload file.
func (c Component) ReadExampleFile(exampleName, rel string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, path.Join(c.dir, "example", exampleName, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read example file %s: %w", rel, err)
	}

	return data, nil
}

// ReadFile returns the contents of a component payload file (non-example).
func (c Component) ReadFile(rel string) ([]byte, error) {
	data, err := fs.ReadFile(c.fsys, path.Join(c.dir, rel))
	if err != nil {
		return nil, fmt.Errorf("failed to read component file %s: %w", rel, err)
	}

	return data, nil
}

// Snippet returns the component's post-install note with @PROJECT_NAME@
// substituted, and whether the component has one.
func (c Component) Snippet(projectName string) (string, bool) {
	data, err := fs.ReadFile(c.fsys, path.Join(c.dir, "snippet.txt"))
	if err != nil {
		return "", false
	}

	return strings.ReplaceAll(string(data), "@PROJECT_NAME@", projectName), true
}

// Functions - Public

// Discover loads every component under dir in fsys. A directory without a
// meta.toml is not a component; a malformed meta.toml is a warning on warn,
// not a fatal error.
func Discover(fsys fs.FS, dir string, warn io.Writer) ([]Component, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read components directory %s: %w", dir, err)
	}

	var components []Component

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		componentDir := path.Join(dir, entry.Name())

		meta, err := fs.ReadFile(fsys, path.Join(componentDir, "meta.toml"))
		if err != nil {
			continue
		}

		component := Component{dir: componentDir, fsys: fsys}
		if err := toml.Unmarshal(meta, &component); err != nil {
			fmt.Fprintf(warn, "warning: skipping component %s: %v\n", entry.Name(), err)
			continue
		}

		applyComponentDefaults(&component, entry.Name())
		components = append(components, component)
	}

	sort.Slice(components, func(i, j int) bool { return components[i].Name < components[j].Name })

	return components, nil
}

// Lookup returns the named component from the discovered set.
func Lookup(components []Component, name string) (Component, error) {
	for _, component := range components {
		if component.Name == name {
			return component, nil
		}
	}

	return Component{}, fmt.Errorf("%w: %q", ErrComponentNotFound, name)
}

// Functions - Private

// applyComponentDefaults fills the optional metadata fields.
func applyComponentDefaults(component *Component, dirName string) {
	if component.Name == "" {
		component.Name = dirName
	}

	if component.DisplayName == "" {
		component.DisplayName = component.Name
	}

	if component.Category == "" {
		component.Category = "other"
	}
}
