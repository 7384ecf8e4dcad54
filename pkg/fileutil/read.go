package fileutil

import (
	"io"
	"os"

	"github.com/thoreinstein/usersrc2xml/internal/errors"
)

// MaxFileSize is the maximum file size we'll read (1MB).
// userSrc files are a handful of lines; anything larger is not one.
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ErrNotRegular indicates the path names a directory or device.
var ErrNotRegular = errors.New("not a regular file")

// ReadFileWithLimit reads a regular file up to MaxFileSize.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	// Fail fast on size and type when the stat is available
	if info, err := f.Stat(); err == nil {
		if !info.Mode().IsRegular() {
			return nil, ErrNotRegular
		}
		if info.Size() > MaxFileSize {
			return nil, ErrFileTooLarge
		}
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}
