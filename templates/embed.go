// Package templates holds the embedded project skeleton and the component
// payload tree that scafgen installs into target projects.
//
// Go source payloads carry a .tmpl suffix so they are data here rather than
// packages of this module; scafgen strips the suffix on install.
package templates

import "embed"

// FS is the embedded template tree.
//
//go:embed project components
var FS embed.FS

// Placeholders replaced when rendering project templates.
const (
	// ModulePlaceholder is the module path used inside project templates.
	ModulePlaceholder = "example.com/tabgame"

	// NamePlaceholder is the project name used inside project templates.
	NamePlaceholder = "tabgame"
)
