package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sink receives finished PNG files. It stands in for the browser's
// download trigger.
type Sink interface {
	Write(filename string, data []byte) error
}

// DirSink writes exports into a directory, creating it on first use.
type DirSink struct {
	Dir string
}

func (s DirSink) Write(filename string, data []byte) error {
	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(s.Dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

// Filename derives an export filename from a section title: lower-cased,
// whitespace runs collapsed to single dashes, plus the image extension.
func Filename(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Join(strings.Fields(slug), "-")
	slug = strings.ReplaceAll(slug, string(filepath.Separator), "-")
	if slug == "" {
		slug = "section"
	}
	return slug + ".png"
}
