package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Kind selects the per-entity upload folder.
type Kind string

const (
	KindUser   Kind = "user"
	KindRecipe Kind = "recipe"
)

var allowedExtensions = map[string]struct{}{
	"png":  {},
	"jpg":  {},
	"jpeg": {},
	"gif":  {},
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Store writes uploaded images into per-kind folders and removes stale ones.
type Store struct {
	dirs   map[Kind]string
	logger *zap.SugaredLogger
}

func NewStore(userDir, recipeDir string, logger *zap.SugaredLogger) (*Store, error) {
	dirs := map[Kind]string{
		KindUser:   userDir,
		KindRecipe: recipeDir,
	}
	for kind, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s upload dir failed: %w", kind, err)
		}
	}
	return &Store{dirs: dirs, logger: logger}, nil
}

// Save stores the uploaded file and returns the final filename. An absent file
// or a disallowed extension yields an empty name with no error: the caller
// treats that as "no picture". The stored name is the sanitized original base
// name with a second-granularity timestamp appended before the extension;
// two same-named uploads within one second can still collide.
func (s *Store) Save(fh *multipart.FileHeader, kind Kind) (string, error) {
	if fh == nil {
		return "", nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", nil
	}

	base := filepath.Base(fh.Filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = unsafeChars.ReplaceAllString(base, "")
	if base == "" {
		base = "upload"
	}

	name := fmt.Sprintf("%s_%s.%s", base, time.Now().Format("20060102_150405"), ext)
	dst := filepath.Join(s.dirs[kind], name)

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file failed: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create upload target failed: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write upload failed: %w", err)
	}
	return name, nil
}

// Delete removes a stored file if it exists. Deletion is best-effort: failures
// are logged and never fail the calling operation.
func (s *Store) Delete(kind Kind, name string) {
	if name == "" {
		return
	}
	path := filepath.Join(s.dirs[kind], name)
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := os.Remove(path); err != nil {
		s.logger.Warnw("remove uploaded file failed", "path", path, "error", err)
	}
}

// Path returns where a stored filename lives on disk.
func (s *Store) Path(kind Kind, name string) string {
	return filepath.Join(s.dirs[kind], name)
}

// Dir returns the folder backing a kind, for static file serving.
func (s *Store) Dir(kind Kind) string {
	return s.dirs[kind]
}
