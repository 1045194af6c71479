// Package filex contains filename and file-staging helpers used by the
// staging area and the upload pipeline.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eshmelev/dropspace/internal/mimex"
	"github.com/eshmelev/dropspace/internal/models"
)

// FormatSize renders a raw byte count as a human-readable label with two
// decimals, e.g. "1.25 MB".
func FormatSize(bytes int64) string {
	const unit = 1024.0
	size := float64(bytes)
	for _, suffix := range []string{"B", "KB", "MB", "GB"} {
		if size < unit || suffix == "GB" {
			if suffix == "B" {
				return fmt.Sprintf("%d B", bytes)
			}
			return fmt.Sprintf("%.2f %s", size, suffix)
		}
		size /= unit
	}
	return fmt.Sprintf("%d B", bytes)
}

// SplitName lowercases the filename and returns it together with the
// extension parsed from the final dot-segment (without the dot). A name
// with no dot yields an empty extension.
func SplitName(filename string) (name, extension string) {
	name = strings.ToLower(filename)
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		extension = name[i+1:]
	}
	return name, extension
}

// StageFromPath builds a StagedFile for a file on disk. The binary is not
// read here; the upload pipeline opens Path when it runs.
func StageFromPath(path string) (models.StagedFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.StagedFile{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return models.StagedFile{}, fmt.Errorf("stage %s: is a directory", path)
	}

	name := filepath.Base(path)
	return models.StagedFile{
		Name:     name,
		MimeType: mimex.Normalize(name, ""),
		Size:     info.Size(),
		Path:     path,
	}, nil
}
