package web

import (
	"embed"
	"io/fs"
)

// FS contains all embedded web assets: static files and the default site
// content. The patterns are relative to this file's directory.
//
//go:embed static content
var FS embed.FS

// Static returns the static asset tree rooted at "static".
func Static() fs.FS {
	sub, err := fs.Sub(FS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Content returns the default catalog content rooted at "content".
func Content() fs.FS {
	sub, err := fs.Sub(FS, "content")
	if err != nil {
		panic(err)
	}
	return sub
}
