// Package static embeds the default single-page application shell and
// favicon served when the application does not override them.
package static

import (
	"embed"
	"io/fs"
)

// Default asset names.
const (
	IndexFile   = "index.html"
	FaviconFile = "favicon.png"
)

//go:embed index.html favicon.png
var assets embed.FS

// FS returns the embedded assets.
func FS() fs.FS {
	return assets
}

// Index returns the embedded SPA shell.
func Index() []byte {
	b, _ := assets.ReadFile(IndexFile)
	return b
}

// Favicon returns the embedded default favicon.
func Favicon() []byte {
	b, _ := assets.ReadFile(FaviconFile)
	return b
}
