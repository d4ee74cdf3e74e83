package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/you-humble/part-monitoring/internal/model"
)

const filePerm = 0o644

type fileRepository struct {
	path string
}

// NewFileRepository stores the whole part list as one indented JSON array.
func NewFileRepository(path string) *fileRepository {
	return &fileRepository{path: path}
}

func (r *fileRepository) Load(ctx context.Context) ([]model.Part, error) {
	const op = "repository.file.Load"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []model.Part{}, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Part{}, nil
	}

	var ents []PartEntity
	if err := json.Unmarshal(data, &ents); err != nil {
		return nil, fmt.Errorf("%s decode %s: %w", op, r.path, err)
	}

	parts, err := EntitiesToModels(ents)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return parts, nil
}

// Save writes to a temp file in the target directory and renames it over
// the target, so a failed write leaves the previous file intact.
func (r *fileRepository) Save(ctx context.Context, parts []model.Part) (err error) {
	const op = "repository.file.Save"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(EntitiesFromModels(parts)); err != nil {
		return fmt.Errorf("%s encode: %w", op, err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%s mkdir: %w", op, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s create temp: %w", op, err)
	}
	tmpName := tmp.Name()

	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%s write: %w", op, err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%s sync: %w", op, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s close: %w", op, err)
	}
	if err = os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("%s chmod: %w", op, err)
	}
	if err = os.Rename(tmpName, r.path); err != nil {
		return fmt.Errorf("%s rename: %w", op, err)
	}

	return nil
}
