// Package run implements the scafgen command logic in a testable way: every
// effect goes through an injected seam (filesystem, prompter, output writer).
package run

import (
	"errors"
	"fmt"
	"io"

	"github.com/alexflint/go-arg"

	"github.com/tablog/scaffold/internal/core"
)

// Vars.
var (
	errCommandFailed = errors.New("command failed")
	errFileNotGo     = errors.New("not a Go source file")
	errNotAProject   = errors.New("no go.mod found; run scafgen init first or cd into a project")
)

// Interfaces - Public

// Prompter asks the user for a value. An empty reply takes the default when
// one is set; validate rejects bad input and re-prompts.
type Prompter interface {
	Ask(prompt, defaultValue string, validate func(string) error) (string, error)
}

// Structs - Private

// addLibCmd holds the arguments of the addlib subcommand.
type addLibCmd struct {
	Name  string   `arg:"positional"       help:"library (package) name; prompted for when omitted"`
	Files []string `arg:"--file,separate"  help:"existing source file to copy into the package instead of generating placeholders"`
}

// cliArgs defines the command line of the scafgen tool.
type cliArgs struct {
	Init      *initCmd      `arg:"subcommand:init"      help:"initialize a new project in the current directory"`
	AddLib    *addLibCmd    `arg:"subcommand:addlib"    help:"add a library package under internal/"`
	Component *componentCmd `arg:"subcommand:component" help:"list or add project components"`
}

// componentAddCmd holds the arguments of component add.
type componentAddCmd struct {
	Name    string `arg:"positional,required" help:"component to add"`
	Example string `arg:"--example"           help:"install only this example of the component"`
}

// componentCmd groups the component subcommands.
type componentCmd struct {
	List *componentListCmd `arg:"subcommand:list" help:"list available components"`
	Add  *componentAddCmd  `arg:"subcommand:add"  help:"add a component to the current project"`
}

// componentListCmd holds the (empty) arguments of component list.
type componentListCmd struct{}

// initCmd holds the arguments of the init subcommand.
type initCmd struct {
	Name   string `arg:"--name"   help:"project name (prompted for when omitted)"`
	Module string `arg:"--module" help:"module path (prompted for when omitted)"`
}

// Functions - Public

// Run executes the scafgen tool. It takes the raw command line, a working
// directory getter, a FileSystem for all disk access, a Prompter for
// interactive input, and a writer for progress output. Commands that modify a
// project operate on the working directory, the way the original build
// scripts did.
func Run(
	args []string,
	getwd func() (string, error),
	fsys core.FileSystem,
	prompter Prompter,
	out io.Writer,
) error {
	parsed, parser, err := parseArgs(args)
	if err != nil {
		return err
	}

	workDir, err := getwd()
	if err != nil {
		return fmt.Errorf("failed to determine working directory: %w", err)
	}

	switch {
	case parsed.Init != nil:
		return runInit(parsed.Init, workDir, fsys, prompter, out)
	case parsed.AddLib != nil:
		return runAddLib(parsed.AddLib, workDir, fsys, prompter, out)
	case parsed.Component != nil && parsed.Component.List != nil:
		return runComponentList(out)
	case parsed.Component != nil && parsed.Component.Add != nil:
		return runComponentAdd(parsed.Component.Add, workDir, fsys, out)
	default:
		parser.WriteHelp(out)
		return nil
	}
}

// Functions - Private

// parseArgs parses the command line into cliArgs.
func parseArgs(args []string) (cliArgs, *arg.Parser, error) {
	var parsed cliArgs

	parser, err := arg.NewParser(arg.Config{Program: "scafgen"}, &parsed)
	if err != nil {
		return cliArgs{}, nil, fmt.Errorf("failed to create argument parser: %w", err)
	}

	var cmdArgs []string
	if len(args) > 1 {
		cmdArgs = args[1:]
	}

	err = parser.Parse(cmdArgs)
	if err != nil {
		return cliArgs{}, nil, fmt.Errorf("failed to parse arguments: %w", err)
	}

	return parsed, parser, nil
}

// reportFailure summarizes the failed steps of a runner on out and returns
// the command error.
func reportFailure(runner *core.Runner, out io.Writer) error {
	failed := runner.Failed()

	if len(failed) > 0 {
		fmt.Fprintln(out, "\nfailed steps:")

		for _, step := range failed {
			fmt.Fprintf(out, "  - %s: %v\n", step.Name, step.Err())
		}
	}

	if len(failed) == 1 {
		return fmt.Errorf("%w: %s: %w", errCommandFailed, failed[0].Name, failed[0].Err())
	}

	return errCommandFailed
}
