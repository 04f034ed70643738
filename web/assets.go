// Package web holds the chat page served at "/".
package web

import "embed"

// Dist contains index.html
//
//go:embed index.html
var Dist embed.FS
