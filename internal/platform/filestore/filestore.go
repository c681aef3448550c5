// Package filestore persists task completion artifacts on local disk.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Local struct {
	dir string
}

func New(dir string) *Local {
	return &Local{dir: dir}
}

// Store writes data under a random name and returns the reference kept on the
// task row. The original filename survives as a suffix, sanitized so a crafted
// name cannot escape the artifact directory.
func (l *Local) Store(ctx context.Context, name string, data []byte) (string, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", err
	}
	ref := fmt.Sprintf("%s-%s", uuid.NewString(), sanitize(name))
	if err := os.WriteFile(filepath.Join(l.dir, ref), data, 0o644); err != nil {
		return "", err
	}
	return ref, nil
}

// Open returns the artifact bytes for a stored reference.
func (l *Local) Open(ctx context.Context, ref string) ([]byte, error) {
	return os.ReadFile(filepath.Join(l.dir, sanitize(ref)))
}

func sanitize(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "artifact"
	}
	return name
}
