// Package storage implementa ports.DocumentStore sobre disco local y Google Cloud Storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// LocalStore guarda los documentos bajo root (por defecto uploads/projecten).
type LocalStore struct {
	root string
}

// NewLocalStore crea root si no existe.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: crear %s: %v", domain.ErrIO, root, err)
	}
	return &LocalStore{root: root}, nil
}

// Save escribe en un fichero temporal del mismo directorio y lo renombra, de modo que
// un lector nunca ve un fichero a medias.
func (s *LocalStore) Save(ctx context.Context, key string, r io.Reader) error {
	dst, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("%w: crear map: %v", domain.ErrIO, err)
	}
	tmp := filepath.Join(filepath.Dir(dst), ".upload-"+uuid.NewString())
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("%w: crear fichero: %v", domain.ErrIO, err)
	}
	_, err = io.Copy(f, contextReader{ctx: ctx, r: r})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: escribir %s: %v", domain.ErrIO, key, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: renombrar %s: %v", domain.ErrIO, key, err)
	}
	return nil
}

// Open devuelve domain.ErrNotFound si el fichero no existe.
func (s *LocalStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: abrir %s: %v", domain.ErrIO, key, err)
	}
	return f, nil
}

// Delete devuelve domain.ErrNotFound si el fichero no existe.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: borrar %s: %v", domain.ErrIO, key, err)
	}
	return nil
}

// path resuelve key bajo root. Una clave que sale de root se trata como inexistente.
func (s *LocalStore) path(key string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.root, full)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(key) {
		return "", fmt.Errorf("clave %q fuera del almacén: %w", key, domain.ErrNotFound)
	}
	return full, nil
}

// contextReader corta la copia si el contexto se cancela (cliente desconectado).
type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
