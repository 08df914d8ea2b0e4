package run

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/dave/dst/decorator"
	"github.com/toejough/go-reorder"

	"github.com/tablog/scaffold/internal/core"
)

// Vars.
var errPackageExists = errors.New("package directory already has Go source")

// Functions - Private

// runAddLib adds a library package under internal/ in the current project:
// either generated placeholder files or copies of files the user points at.
// The original tool copied its summary to the clipboard; printing it is the
// Go-tool norm, so the snippet goes to out instead.
func runAddLib(cmd *addLibCmd, projectRoot string, fsys core.FileSystem, prompter Prompter, out io.Writer) error {
	projectName, err := resolveProjectName(projectRoot, fsys, prompter)
	if err != nil {
		return err
	}

	libName := cmd.Name
	if libName == "" {
		libName, err = prompter.Ask("library name", "", core.ValidatePackageName)
		if err != nil {
			return err
		}
	} else if err = core.ValidatePackageName(libName); err != nil {
		return err
	}

	ctx := &core.Context{ProjectRoot: projectRoot, ProjectName: projectName, LibName: libName}
	runner := core.NewRunner(ctx, out)

	runner.Add(&core.Step{
		Name:        "validate project root",
		Description: "the current directory must hold a Go module",
		Check:       checkIsProject(fsys),
	}).Add(&core.Step{
		Name:        "check for package collisions",
		Description: "refuse to clobber an existing package",
		Check:       checkNoPackageCollision(fsys),
	}).Add(&core.Step{
		Name:        "write library files",
		Description: "generate placeholder sources or copy the selected files",
		Run:         writeLibraryFiles(fsys, cmd.Files, out),
	}).Add(&core.Step{
		Name:        "compose summary",
		Description: "assemble the import path and file list for the user",
		Run:         composeLibrarySnippet(fsys),
	})

	if !runner.Execute(true) {
		return reportFailure(runner, out)
	}

	fmt.Fprintf(out, "\n%s\n", ctx.Snippet)

	return nil
}

// checkIsProject verifies the project root contains a go.mod.
func checkIsProject(fsys core.FileSystem) func(*core.Context) error {
	return func(ctx *core.Context) error {
		if !fsys.Exists(filepath.Join(ctx.ProjectRoot, "go.mod")) {
			return errNotAProject
		}

		return nil
	}
}

// checkNoPackageCollision refuses to write into a package directory that
// already holds Go source, reporting the package it found there.
func checkNoPackageCollision(fsys core.FileSystem) func(*core.Context) error {
	return func(ctx *core.Context) error {
		dir := libraryDir(ctx)

		if !fsys.Exists(dir) {
			return nil
		}

		sources, err := fsys.Glob(filepath.Join(dir, "*.go"))
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", dir, err)
		}

		if len(sources) == 0 {
			return nil
		}

		pkgName := scanPackageName(fsys, sources)

		return fmt.Errorf("%w: %s holds package %q (%d files)", errPackageExists, dir, pkgName, len(sources))
	}
}

// composeLibrarySnippet assembles the user-facing summary for the new package.
func composeLibrarySnippet(fsys core.FileSystem) func(*core.Context) error {
	return func(ctx *core.Context) error {
		gomod, err := fsys.ReadFile(filepath.Join(ctx.ProjectRoot, "go.mod"))
		if err != nil {
			return fmt.Errorf("failed to read go.mod: %w", err)
		}

		modPath, err := core.ModulePath(gomod)
		if err != nil {
			return err
		}

		var sb strings.Builder

		fmt.Fprintf(&sb, "library %s created. import it as:\n\n", ctx.LibName)
		fmt.Fprintf(&sb, "    import \"%s/internal/%s\"\n\n", modPath, ctx.LibName)
		fmt.Fprintf(&sb, "files:\n")

		for _, created := range ctx.Created {
			fmt.Fprintf(&sb, "  - %s\n", created)
		}

		ctx.Snippet = sb.String()

		return nil
	}
}

// libraryDir returns the destination directory of the library package.
func libraryDir(ctx *core.Context) string {
	return filepath.Join(ctx.ProjectRoot, "internal", ctx.LibName)
}

// licenseHeader returns the Apache-style header the placeholder files carry.
func licenseHeader(projectName string) string {
	return fmt.Sprintf(`// Copyright %d The %s Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
`, time.Now().Year(), projectName)
}

// placeholderDoc returns the doc.go content for a fresh library package.
func placeholderDoc(projectName, libName string) string {
	return licenseHeader(projectName) + fmt.Sprintf(`
// Package %s is part of %s.
package %s
`, libName, projectName, libName)
}

// placeholderSource returns the starter source file for a fresh library
// package.
func placeholderSource(projectName, libName string) string {
	return licenseHeader(projectName) + fmt.Sprintf(`
package %s

// TODO: implement %s
`, libName, libName)
}

// resolveProjectName reads the project name out of go.mod, falling back to a
// prompt when the module declaration can't be read.
func resolveProjectName(projectRoot string, fsys core.FileSystem, prompter Prompter) (string, error) {
	gomod, err := fsys.ReadFile(filepath.Join(projectRoot, "go.mod"))
	if err != nil {
		return "", errNotAProject
	}

	projectName, err := core.ProjectName(gomod)
	if err != nil {
		return prompter.Ask("project name (not found in go.mod)", "", core.ValidateProjectName)
	}

	return projectName, nil
}

// scanPackageName parses the first source file it can to name the package
// occupying a directory. Parsing failures just degrade the error message.
func scanPackageName(fsys core.FileSystem, sources []string) string {
	for _, source := range sources {
		data, err := fsys.ReadFile(source)
		if err != nil {
			continue
		}

		file, err := decorator.Parse(data)
		if err != nil {
			continue
		}

		return file.Name.Name
	}

	return "unknown"
}

// writeLibraryFiles writes the package contents: copies of the files the
// user selected, or generated placeholders when none were given. Generated
// sources are declaration-ordered before writing; a reorder failure keeps
// the unordered source.
func writeLibraryFiles(fsys core.FileSystem, files []string, out io.Writer) func(*core.Context) error {
	return func(ctx *core.Context) error {
		dir := libraryDir(ctx)

		if len(files) > 0 {
			return copySelectedFiles(fsys, ctx, dir, files)
		}

		generated := map[string]string{
			"doc.go":           placeholderDoc(ctx.ProjectName, ctx.LibName),
			ctx.LibName + ".go": placeholderSource(ctx.ProjectName, ctx.LibName),
		}

		for _, name := range []string{"doc.go", ctx.LibName + ".go"} {
			content := generated[name]

			reordered, err := reorder.Source(content)
			if err != nil {
				fmt.Fprintf(out, "warning: failed to reorder %s: %v\n", name, err)

				reordered = content
			}

			if err := writeProjectFile(fsys, ctx, filepath.Join(dir, name), []byte(reordered)); err != nil {
				return err
			}
		}

		return nil
	}
}

// copySelectedFiles copies the user's files into the package directory.
func copySelectedFiles(fsys core.FileSystem, ctx *core.Context, dir string, files []string) error {
	for _, file := range files {
		if !strings.HasSuffix(file, ".go") {
			return fmt.Errorf("%w: %s", errFileNotGo, file)
		}

		if !fsys.Exists(file) {
			return fmt.Errorf("%w: %s", core.ErrSourceMissing, file)
		}

		dst := filepath.Join(dir, filepath.Base(file))
		if err := core.CopyFile(fsys, file, dst, false); err != nil {
			return err
		}

		ctx.Created = append(ctx.Created, dst)
		ctx.SrcFiles = append(ctx.SrcFiles, file)
	}

	return nil
}
