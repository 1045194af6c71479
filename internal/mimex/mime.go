// Package mimex normalizes declared mime types using an extension lookup.
// Browsers and shells often report an empty or generic type for source
// files, archives, and markdown; the lookup fills those in.
package mimex

import (
	"mime"
	"path/filepath"
	"strings"
)

const generic = "application/octet-stream"

// byExtension covers extensions the stdlib table misses or reports
// inconsistently across platforms.
var byExtension = map[string]string{
	".md":   "text/markdown",
	".ts":   "text/typescript",
	".tsx":  "text/typescript",
	".jsx":  "text/javascript",
	".go":   "text/x-go",
	".py":   "text/x-python",
	".yml":  "application/yaml",
	".yaml": "application/yaml",
	".toml": "application/toml",
	".sql":  "application/sql",
	".csv":  "text/csv",
	".log":  "text/plain",
	".7z":   "application/x-7z-compressed",
	".rar":  "application/vnd.rar",
	".heic": "image/heic",
}

// Normalize returns the declared mime type unchanged unless it is empty or
// generic, in which case the filename's extension decides. Unknown
// extensions fall back to application/octet-stream.
func Normalize(filename, declared string) string {
	if declared != "" && declared != generic {
		return declared
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return generic
	}
	if t, ok := byExtension[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		// Strip charset parameters; records keep the bare type.
		if i := strings.Index(t, ";"); i >= 0 {
			t = strings.TrimSpace(t[:i])
		}
		return t
	}
	return generic
}
