package run

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/akedrou/textdiff"

	"github.com/tablog/scaffold/internal/core"
	"github.com/tablog/scaffold/templates"
)

// Functions - Private

// runComponentList prints the discovered components with their examples.
func runComponentList(out io.Writer) error {
	components, err := core.Discover(templates.FS, "components", out)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "available components:\n\n")

	for _, component := range components {
		fmt.Fprintf(out, "  %s (%s) [%s]\n", component.Name, component.DisplayName, component.Category)
		fmt.Fprintf(out, "      %s\n", component.Description)

		for _, example := range component.Examples {
			fmt.Fprintf(out, "      example: %s - %s\n", example.Name, example.DisplayName)
		}
	}

	return nil
}

// runComponentAdd installs a component into the current project: its payload
// files, its examples, and its module requirements.
func runComponentAdd(cmd *componentAddCmd, projectRoot string, fsys core.FileSystem, out io.Writer) error {
	var component core.Component

	ctx := &core.Context{ProjectRoot: projectRoot}
	runner := core.NewRunner(ctx, out)

	runner.Add(&core.Step{
		Name:        "validate project root",
		Description: "the current directory must hold a Go module",
		Check:       checkIsProject(fsys),
	}).Add(&core.Step{
		Name:        "read project metadata",
		Description: "derive the project name and module path from go.mod",
		Run:         readProjectMetadata(fsys),
	}).Add(&core.Step{
		Name:        "look up component",
		Description: "find " + cmd.Name + " in the component registry",
		Run:         lookupComponent(cmd, &component, out),
	}).Add(&core.Step{
		Name:        "install component files",
		Description: "copy the component payload into the project",
		Run:         installComponentFiles(fsys, &component),
	}).Add(&core.Step{
		Name:        "install examples",
		Description: "copy the component examples into the project",
		Run:         installComponentExamples(fsys, cmd, &component),
	}).Add(&core.Step{
		Name:        "update go.mod requirements",
		Description: "add the component's modules to the project go.mod",
		Run:         updateRequirements(fsys, &component, out),
	})

	if !runner.Execute(true) {
		return reportFailure(runner, out)
	}

	fmt.Fprintf(out, "\ncomponent %s added. created files:\n", cmd.Name)

	for _, created := range ctx.Created {
		fmt.Fprintf(out, "  - %s\n", created)
	}

	if ctx.Snippet != "" {
		fmt.Fprintf(out, "\n%s\n", ctx.Snippet)
	}

	return nil
}

// installComponentExamples writes the chosen example (or all of them) into
// their destinations, stripping the template suffix from Go payloads.
func installComponentExamples(fsys core.FileSystem, cmd *componentAddCmd, component *core.Component) func(*core.Context) error {
	return func(ctx *core.Context) error {
		if !component.SupportsExample {
			return nil
		}

		chosen := component.Examples
		if cmd.Example != "" {
			example, err := component.Example(cmd.Example)
			if err != nil {
				return err
			}

			chosen = []core.Example{example}
		}

		for _, example := range chosen {
			if err := installExample(fsys, ctx, component, example); err != nil {
				return err
			}
		}

		return nil
	}
}

// installComponentFiles copies the component's non-example payload files to
// their destinations, substituting the project name.
func installComponentFiles(fsys core.FileSystem, component *core.Component) func(*core.Context) error {
	return func(ctx *core.Context) error {
		for _, install := range component.Files {
			data, err := component.ReadFile(install.Source)
			if err != nil {
				return err
			}

			data = applyReplacements(data, map[string]string{"@PROJECT_NAME@": ctx.ProjectName})

			dst := filepath.Join(ctx.ProjectRoot, filepath.FromSlash(install.Destination))
			if err := writeProjectFile(fsys, ctx, dst, data); err != nil {
				return err
			}
		}

		return nil
	}
}

// installExample writes every file of one example into its destination
// directory.
func installExample(fsys core.FileSystem, ctx *core.Context, component *core.Component, example core.Example) error {
	destination, err := component.ExampleDestination(ctx.ProjectRoot, example.Name)
	if err != nil {
		return err
	}

	files, err := component.ExampleFiles(example.Name)
	if err != nil {
		return err
	}

	for _, rel := range files {
		data, err := component.ReadExampleFile(example.Name, rel)
		if err != nil {
			return err
		}

		data = applyReplacements(data, map[string]string{"@PROJECT_NAME@": ctx.ProjectName})

		dst := filepath.Join(destination, filepath.FromSlash(stripTemplateSuffix(rel)))
		if err := writeProjectFile(fsys, ctx, dst, data); err != nil {
			return err
		}
	}

	return nil
}

// lookupComponent resolves the named component from the registry and stores
// the project name for later placeholder substitution.
func lookupComponent(cmd *componentAddCmd, component *core.Component, warn io.Writer) func(*core.Context) error {
	return func(ctx *core.Context) error {
		components, err := core.Discover(templates.FS, "components", warn)
		if err != nil {
			return err
		}

		found, err := core.Lookup(components, cmd.Name)
		if err != nil {
			return err
		}

		if cmd.Example != "" {
			if _, err := found.Example(cmd.Example); err != nil {
				return err
			}
		}

		*component = found

		return nil
	}
}

// readProjectMetadata fills the context with the project name and module
// path declared in go.mod, so later steps can substitute them.
func readProjectMetadata(fsys core.FileSystem) func(*core.Context) error {
	return func(ctx *core.Context) error {
		gomod, err := fsys.ReadFile(filepath.Join(ctx.ProjectRoot, "go.mod"))
		if err != nil {
			return fmt.Errorf("failed to read go.mod: %w", err)
		}

		modPath, err := core.ModulePath(gomod)
		if err != nil {
			return err
		}

		name, err := core.ProjectName(gomod)
		if err != nil {
			return err
		}

		ctx.ModulePath = modPath
		ctx.ProjectName = name

		return nil
	}
}

// updateRequirements adds the component's module requirements to the target
// go.mod, shows the resulting diff, and stores the component snippet.
func updateRequirements(fsys core.FileSystem, component *core.Component, out io.Writer) func(*core.Context) error {
	return func(ctx *core.Context) error {
		gomodPath := filepath.Join(ctx.ProjectRoot, "go.mod")

		gomod, err := fsys.ReadFile(gomodPath)
		if err != nil {
			return fmt.Errorf("failed to read go.mod: %w", err)
		}

		updated := gomod

		for _, requirement := range component.Requires {
			updated, err = core.AddRequire(updated, requirement.Path, requirement.Version)
			if err != nil {
				return err
			}
		}

		if !bytes.Equal(updated, gomod) {
			if err := fsys.WriteFile(gomodPath, updated, renderedFilePermissions); err != nil {
				return fmt.Errorf("failed to write go.mod: %w", err)
			}

			diff := textdiff.Unified("go.mod (before)", "go.mod (after)", string(gomod), string(updated))
			if diff != "" {
				fmt.Fprintf(out, "%s\n", diff)
			}
		}

		if snippet, ok := component.Snippet(ctx.ProjectName); ok {
			ctx.Snippet = snippet
		}

		return nil
	}
}
