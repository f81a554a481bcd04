// Package staticfiles embeds the css/js assets so the server binary is
// self-contained. Development can bypass the embed with a disk override.
package staticfiles

import (
	"embed"
	"io/fs"
)

//go:embed css/* js/*
var embedded embed.FS

func EmbeddedFS() fs.FS {
	return embedded
}
