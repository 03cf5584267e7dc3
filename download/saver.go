package download

import (
	"os"
	"path/filepath"
)

// Saver receives a downloaded artifact. It stands in for the browser's
// "save as" behavior.
type Saver interface {
	Save(filename string, data []byte) error
}

// DirSaver writes artifacts into a directory, creating it if needed.
type DirSaver struct {
	// Dir is the target directory. "" means the working directory.
	Dir string
}

// Save writes the artifact to Dir/filename.
func (s DirSaver) Save(filename string, data []byte) error {
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, filename), data, 0o644)
}
