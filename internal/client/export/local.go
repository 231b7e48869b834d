package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local writes export artifacts into a directory on the local filesystem.
type Local struct {
	Dir string
}

func NewLocal(dir string) *Local {
	return &Local{Dir: dir}
}

func (l *Local) Save(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(l.Dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", l.Dir, err)
	}
	path := filepath.Join(l.Dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
