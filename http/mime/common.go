package mime

import (
	"path/filepath"
	"strings"
)

type MIME = string

const (
	OctetStream MIME = "application/octet-stream"
	Plain       MIME = "text/plain"
	HTML        MIME = "text/html"
	CSS         MIME = "text/css"
	JS          MIME = "text/javascript"
	Markdown    MIME = "text/markdown"
	XML         MIME = "text/xml"
	JSON        MIME = "application/json"
	YAML        MIME = "application/yaml"
	PDF         MIME = "application/pdf"
	WASM        MIME = "application/wasm"
	ZIP         MIME = "application/zip"
	GZIP        MIME = "application/gzip"
	AVIF        MIME = "image/avif"
	GIF         MIME = "image/gif"
	JPEG        MIME = "image/jpeg"
	PNG         MIME = "image/png"
	SVG         MIME = "image/svg+xml"
	ICO         MIME = "image/vnd.microsoft.icon"
	WEBP        MIME = "image/webp"
	MP4         MIME = "video/mp4"
	WOFF2       MIME = "font/woff2"
)

// Guess returns the MIME for the file path judging by its extension, parametrized with
// a charset when the type has a default one. Unknown extensions yield OctetStream.
func Guess(path string) string {
	mime, found := Extension[strings.ToLower(filepath.Ext(path))]
	if !found {
		return OctetStream
	}

	if charset, ok := DefaultCharset[mime]; ok {
		return mime + "; charset=" + charset
	}

	return mime
}
