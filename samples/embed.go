// Package samples embeds the example projects written by `tidy init`.
package samples

import "embed"

// Content holds one directory per sample project
//
//go:embed survey
var Content embed.FS
