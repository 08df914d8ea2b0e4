package core

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"unicode"

	"golang.org/x/mod/modfile"
)

// Vars.
var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrNameBadChars     = errors.New("name may only contain letters, digits, underscores and hyphens")
	ErrNameLeadingDigit = errors.New("name must not start with a digit")
	ErrNoModulePath     = errors.New("no module path declared in go.mod")
	errPackageBadChars  = errors.New("package name may only contain lowercase letters, digits and underscores")
)

// Functions - Public

// AddRequire adds (or updates) a require directive in go.mod content and
// returns the reformatted file.
func AddRequire(gomod []byte, modPath, version string) ([]byte, error) {
	file, err := modfile.Parse("go.mod", gomod, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}

	if err := file.AddRequire(modPath, version); err != nil {
		return nil, fmt.Errorf("failed to add require %s %s: %w", modPath, version, err)
	}

	file.Cleanup()

	formatted, err := file.Format()
	if err != nil {
		return nil, fmt.Errorf("failed to format go.mod: %w", err)
	}

	return formatted, nil
}

// ModulePath returns the module path declared in go.mod content.
func ModulePath(gomod []byte) (string, error) {
	file, err := modfile.Parse("go.mod", gomod, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse go.mod: %w", err)
	}

	if file.Module == nil || file.Module.Mod.Path == "" {
		return "", ErrNoModulePath
	}

	return file.Module.Mod.Path, nil
}

// ProjectName derives the project name from go.mod content: the last segment
// of the module path. This is the analog of reading the package name out of a
// build file rather than asking the user again.
func ProjectName(gomod []byte) (string, error) {
	modPath, err := ModulePath(gomod)
	if err != nil {
		return "", err
	}

	return path.Base(modPath), nil
}

// ValidatePackageName checks that name is usable as a Go package name:
// lowercase letters, digits and underscores, not starting with a digit.
func ValidatePackageName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if unicode.IsDigit(rune(name[0])) {
		return ErrNameLeadingDigit
	}

	for _, r := range name {
		if !unicode.IsLower(r) && !unicode.IsDigit(r) && r != '_' {
			return fmt.Errorf("%w: %q", errPackageBadChars, name)
		}
	}

	return nil
}

// ValidateProjectName checks that name is a usable project name: letters,
// digits, underscores and hyphens, not starting with a digit.
func ValidateProjectName(name string) error {
	if name == "" {
		return ErrEmptyName
	}

	if unicode.IsDigit(rune(name[0])) {
		return ErrNameLeadingDigit
	}

	stripped := strings.ReplaceAll(strings.ReplaceAll(name, "_", ""), "-", "")
	if stripped == "" {
		return fmt.Errorf("%w: %q", ErrNameBadChars, name)
	}

	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fmt.Errorf("%w: %q", ErrNameBadChars, name)
		}
	}

	return nil
}
