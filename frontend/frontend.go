package frontend

import "embed"

// StaticFiles holds the built single page application
//
//go:embed dist
var StaticFiles embed.FS
