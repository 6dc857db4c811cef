package epub

import (
	"mime"
	"path"
	"strings"

	"github.com/blackwell-systems/gen-epub-book/internal/bookerr"
)

const (
	mediaXHTML = "application/xhtml+xml"
	mediaHTML  = "text/html"
	mediaPlain = "text/plain"
	mediaNCX   = "application/x-dtbncx+xml"
)

// Extensions commonly found in e-book packages. Anything else falls back to
// the platform MIME table.
var extensionToMedia = map[string]string{
	".html":  mediaHTML,
	".htm":   mediaHTML,
	".xhtml": mediaXHTML,
	".css":   "text/css",
	".txt":   mediaPlain,
	".xml":   "application/xml",
	".ncx":   mediaNCX,
	".opf":   "application/oebps-package+xml",
	".smil":  "application/smil+xml",
	".js":    "text/javascript",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".png":   "image/png",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".mp3":   "audio/mpeg",
	".ogg":   "audio/ogg",
	".mp4":   "video/mp4",
}

// guessMediaType looks the extension of name up, returning "" when it is not
// recognised.
func guessMediaType(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return ""
	}
	if mt, ok := extensionToMedia[ext]; ok {
		return mt
	}
	if mt := mime.TypeByExtension(ext); mt != "" {
		if base, _, err := mime.ParseMediaType(mt); err == nil {
			return base
		}
		return mt
	}
	return ""
}

// MediaType resolves the manifest media type of an archive path. HTML is
// declared as XHTML since readers reject bare text/html. Unrecognised
// extensions become text/plain, or fail when strict is set.
func MediaType(archivePath string, strict bool) (string, error) {
	mt := guessMediaType(archivePath)
	switch {
	case mt == mediaHTML:
		return mediaXHTML, nil
	case mt != "":
		return mt, nil
	case strict:
		return "", bookerr.NewWrongFileState("of recognised extension", archivePath)
	default:
		return mediaPlain, nil
	}
}
