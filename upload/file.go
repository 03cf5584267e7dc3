package upload

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest accepted upload, 500 MiB.
const MaxFileSize = 500 << 20

// Validation errors. All short-circuit before any network request.
var (
	// ErrNoFile is returned when no file was provided.
	ErrNoFile = errors.New("upload: no audio file selected")
	// ErrUnsupportedFormat is returned for container types outside the
	// supported set.
	ErrUnsupportedFormat = errors.New("upload: unsupported file format, expected .wav, .mp3, .m4a, or .flac")
	// ErrFileTooLarge is returned for files over MaxFileSize.
	ErrFileTooLarge = errors.New("upload: file size exceeds 500MB limit")
)

// supportedFormats is the set of accepted container MIME types.
var supportedFormats = map[string]bool{
	"audio/wav":  true,
	"audio/mpeg": true,
	"audio/mp4":  true,
	"audio/flac": true,
}

// contentTypeByExt maps accepted file extensions to their declared
// MIME type, mirroring what a browser reports for a picked file.
var contentTypeByExt = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".flac": "audio/flac",
}

// File is an audio file selected for upload.
type File struct {
	// Name is the file name sent to the server.
	Name string
	// ContentType is the declared container MIME type.
	ContentType string
	// Size is the file size in bytes.
	Size int64
	// Reader supplies the file content.
	Reader io.Reader
}

// Validate checks the declared type and size. Audio content itself is
// never inspected.
func (f *File) Validate() error {
	if f == nil || f.Reader == nil {
		return ErrNoFile
	}
	if !supportedFormats[f.ContentType] {
		return ErrUnsupportedFormat
	}
	if f.Size > MaxFileSize {
		return ErrFileTooLarge
	}
	return nil
}

// Open prepares a local file for upload, deriving the declared content
// type from its extension. The returned close function must be called
// after submission.
func Open(path string) (*File, func() error, error) {
	contentType, ok := contentTypeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		return nil, nil, ErrUnsupportedFormat
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("upload: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("upload: %w", err)
	}

	file := &File{
		Name:        filepath.Base(path),
		ContentType: contentType,
		Size:        info.Size(),
		Reader:      f,
	}
	return file, f.Close, nil
}
