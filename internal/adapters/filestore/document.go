package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/zatekoja/ncrm/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/ncrm/pkg/errors"
)

// document is one JSON file holding a top-level array.
type document struct {
	fs   afero.Fs
	path string
}

// read decodes the file into v. A missing or blank file leaves v untouched.
func (d *document) read(ctx context.Context, v interface{}) error {
	exists, err := afero.Exists(d.fs, d.path)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to stat %s", d.path), err)
	}
	if !exists {
		observability.LoggerFromContext(ctx).Debug().Str("path", d.path).Msg("document missing, treating as empty")
		return nil
	}

	data, err := afero.ReadFile(d.fs, d.path)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to read %s", d.path), err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		return d.parseError(err)
	}
	return nil
}

func (d *document) parseError(err error) error {
	return apperrors.NewInternalError(fmt.Sprintf("failed to parse %s", d.path), err)
}

// write replaces the file with the encoding of v. The new content is
// written to a sibling temp file first and renamed into place.
func (d *document) write(ctx context.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to encode %s", d.path), err)
	}

	dir := filepath.Dir(d.path)
	if err := d.fs.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to create %s", dir), err)
	}

	tmp, err := afero.TempFile(d.fs, dir, filepath.Base(d.path)+".*.tmp")
	if err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to create temp file for %s", d.path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = d.fs.Remove(tmpName)
		return apperrors.NewInternalError(fmt.Sprintf("failed to write %s", d.path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = d.fs.Remove(tmpName)
		return apperrors.NewInternalError(fmt.Sprintf("failed to write %s", d.path), err)
	}
	if err := d.fs.Rename(tmpName, d.path); err != nil {
		_ = d.fs.Remove(tmpName)
		return apperrors.NewInternalError(fmt.Sprintf("failed to replace %s", d.path), err)
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("path", d.path).
		Int("bytes", len(data)).
		Msg("document written")
	return nil
}
