package run

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tablog/scaffold/internal/core"
	"github.com/tablog/scaffold/templates"
)

// unexported constants.
const renderedFilePermissions os.FileMode = 0o644

// renderTemplate reads an embedded template and applies the replacements in
// sorted key order, so results are deterministic.
func renderTemplate(src string, replacements map[string]string) ([]byte, error) {
	data, err := fs.ReadFile(templates.FS, src)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", src, err)
	}

	return applyReplacements(data, replacements), nil
}

// applyReplacements substitutes every replacement key in data, in sorted key
// order.
func applyReplacements(data []byte, replacements map[string]string) []byte {
	content := string(data)

	keys := make([]string, 0, len(replacements))
	for key := range replacements {
		keys = append(keys, key)
	}

	slices.Sort(keys)

	for _, old := range keys {
		content = strings.ReplaceAll(content, old, replacements[old])
	}

	return []byte(content)
}

// writeProjectFile writes data to dst, creating parent directories, and
// records the file in the run context.
func writeProjectFile(fsys core.FileSystem, ctx *core.Context, dst string, data []byte) error {
	if err := core.EnsureDir(fsys, filepath.Dir(dst)); err != nil {
		return err
	}

	if err := fsys.WriteFile(dst, data, renderedFilePermissions); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}

	ctx.Created = append(ctx.Created, dst)

	return nil
}

// stripTemplateSuffix removes the .tmpl marker that keeps Go payloads from
// being compiled as part of this module.
func stripTemplateSuffix(name string) string {
	return strings.TrimSuffix(name, ".tmpl")
}
