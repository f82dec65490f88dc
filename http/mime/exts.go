package mime

var Extension = map[string]MIME{
	".avif":  AVIF,
	".css":   CSS,
	".gif":   GIF,
	".htm":   HTML,
	".html":  HTML,
	".ico":   ICO,
	".jpeg":  JPEG,
	".jpg":   JPEG,
	".js":    JS,
	".mjs":   JS,
	".json":  JSON,
	".md":    Markdown,
	".mp4":   MP4,
	".pdf":   PDF,
	".png":   PNG,
	".svg":   SVG,
	".txt":   Plain,
	".wasm":  WASM,
	".webp":  WEBP,
	".woff2": WOFF2,
	".xml":   XML,
	".yaml":  YAML,
	".yml":   YAML,
	".gz":    GZIP,
	".zip":   ZIP,
}

// DefaultCharset defines charsets appended to MIMEs served from disk.
var DefaultCharset = map[MIME]Charset{
	Plain:    UTF8,
	HTML:     UTF8,
	CSS:      UTF8,
	JS:       UTF8,
	Markdown: UTF8,
	XML:      UTF8,
	JSON:     UTF8,
}
