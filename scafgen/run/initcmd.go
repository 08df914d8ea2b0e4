package run

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"

	"golang.org/x/mod/module"

	"github.com/tablog/scaffold/internal/core"
	"github.com/tablog/scaffold/templates"
)

// Vars.

// projectTemplates maps each project template to its destination file name.
// The gitignore rename mirrors the original template's copy-then-rename
// behavior and keeps the embedded tree free of dotfiles.
var projectTemplates = []struct {
	src string
	dst string
}{
	{src: "project/go.mod.tmpl", dst: "go.mod"},
	{src: "project/main.go.tmpl", dst: "main.go"},
	{src: "project/README.md.tmpl", dst: "README.md"},
	{src: "project/Makefile.tmpl", dst: "Makefile"},
	{src: "project/gitignore", dst: ".gitignore"},
}

// Functions - Private

// checkProjectTemplates verifies that every required template entry is
// present in the embedded tree.
func checkProjectTemplates(*core.Context) error {
	for _, entry := range projectTemplates {
		if _, err := fs.Stat(templates.FS, entry.src); err != nil {
			return fmt.Errorf("template %s missing: %w", entry.src, err)
		}
	}

	return nil
}

// runInit initializes a fresh project in projectRoot from the embedded
// project templates, replacing the name and module placeholders.
func runInit(cmd *initCmd, projectRoot string, fsys core.FileSystem, prompter Prompter, out io.Writer) error {
	name, modPath, err := initInputs(cmd, prompter)
	if err != nil {
		return err
	}

	ctx := &core.Context{ProjectRoot: projectRoot, ProjectName: name, ModulePath: modPath}
	runner := core.NewRunner(ctx, out)

	runner.Add(&core.Step{
		Name:        "validate project root",
		Description: "the target directory must exist",
		Check:       checkRootIsDir(fsys),
	}).Add(&core.Step{
		Name:        "validate templates",
		Description: "all project templates must be present in the embedded tree",
		Check:       checkProjectTemplates,
	})

	for _, entry := range projectTemplates {
		runner.Add(&core.Step{
			Name:        "write " + entry.dst,
			Description: "render " + entry.src + " into the project",
			Run:         renderProjectStep(fsys, entry.src, entry.dst),
		})
	}

	if !runner.Execute(true) {
		return reportFailure(runner, out)
	}

	fmt.Fprintf(out, "\nproject %s initialized. created files:\n", name)

	for _, created := range ctx.Created {
		fmt.Fprintf(out, "  - %s\n", created)
	}

	return nil
}

// checkRootIsDir verifies the project root exists and is a directory.
func checkRootIsDir(fsys core.FileSystem) func(*core.Context) error {
	return func(ctx *core.Context) error {
		if !fsys.IsDir(ctx.ProjectRoot) {
			return fmt.Errorf("%w: %s", core.ErrSourceMissing, ctx.ProjectRoot)
		}

		return nil
	}
}

// initInputs resolves the project name and module path from flags or by
// prompting, validating both.
func initInputs(cmd *initCmd, prompter Prompter) (name, modPath string, err error) {
	name = cmd.Name
	if name == "" {
		name, err = prompter.Ask("project name", "", core.ValidateProjectName)
		if err != nil {
			return "", "", err
		}
	} else if err = core.ValidateProjectName(name); err != nil {
		return "", "", err
	}

	modPath = cmd.Module
	if modPath == "" {
		modPath, err = prompter.Ask("module path", "example.com/"+name, module.CheckPath)
		if err != nil {
			return "", "", err
		}
	} else if err = module.CheckPath(modPath); err != nil {
		return "", "", fmt.Errorf("invalid module path %q: %w", modPath, err)
	}

	return name, modPath, nil
}

// renderProjectStep renders one project template into the project root with
// the standard placeholder replacements.
func renderProjectStep(fsys core.FileSystem, src, dst string) func(*core.Context) error {
	return func(ctx *core.Context) error {
		data, err := renderTemplate(src, map[string]string{
			templates.ModulePlaceholder: ctx.ModulePath,
			templates.NamePlaceholder:   ctx.ProjectName,
		})
		if err != nil {
			return err
		}

		return writeProjectFile(fsys, ctx, filepath.Join(ctx.ProjectRoot, dst), data)
	}
}
