// Package assets provides embedded templates
package assets

import "embed"

// Files is embedded html templates
//
//go:embed "html"
var Files embed.FS
