package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileNameWithoutExt extracts the base filename without its extension.
func FileNameWithoutExt(path string) string {
	base := filepath.Base(path)
	if idx := strings.LastIndex(base, "."); idx != -1 {
		base = base[:idx]
	}
	return base
}

// SanitizeFileName replaces characters outside [a-zA-Z0-9-_.] with
// underscores so uploaded names are safe on disk.
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// SaveFileWithTimestamp writes data into uploadDir under a sanitized
// name with a timestamp suffix and returns the destination path.
func SaveFileWithTimestamp(data []byte, originalName, uploadDir string) (string, error) {
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	ext := filepath.Ext(originalName)
	baseFileName := strings.TrimSuffix(filepath.Base(originalName), ext)
	timestamp := time.Now().Unix()
	destFileName := SanitizeFileName(fmt.Sprintf("%s_%d%s", baseFileName, timestamp, ext))
	destPath := filepath.Join(uploadDir, destFileName)

	if err := os.WriteFile(destPath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return destPath, nil
}
