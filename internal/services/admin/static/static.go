// Package static embeds the admin stylesheet.
package static

import (
	"embed"
	"io/fs"
)

//go:embed admin.css
var files embed.FS

// FS returns the embedded static files.
func FS() fs.FS {
	return files
}
