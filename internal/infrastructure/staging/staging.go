package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Area stages uploaded bytes as short-lived files for parsers that need a path or an
// io.ReaderAt over a real file.
type Area struct {
	basePath string
}

func New(basePath string) (*Area, error) {
	if basePath == "" {
		basePath = os.TempDir()
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &Area{basePath: basePath}, nil
}

// Stage writes data to a fresh file named after the upload's extension. The returned cleanup
// removes the file and must be deferred by the caller; it is safe to call more than once.
func (a *Area) Stage(ctx context.Context, filename string, data []byte) (string, func(), error) {
	if err := ctx.Err(); err != nil {
		return "", func() {}, err
	}

	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	f, err := os.CreateTemp(a.basePath, "resume-*"+ext)
	if err != nil {
		return "", func() {}, fmt.Errorf("create staged file: %w", err)
	}
	path := f.Name()
	cleanup := func() { _ = os.Remove(path) }

	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", func() {}, fmt.Errorf("write staged file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", func() {}, fmt.Errorf("close staged file: %w", err)
	}
	return path, cleanup, nil
}

func (a *Area) Dir() string {
	return a.basePath
}
