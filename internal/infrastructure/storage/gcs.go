package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/jhoicas/backoffice-api/internal/domain"
)

// GCSStore guarda los documentos como objetos <prefix>/<key> en un bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore crea el cliente. Si STORAGE_EMULATOR_HOST está definido se conecta al
// emulador sin autenticación.
func NewGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(os.Getenv("STORAGE_EMULATOR_HOST")) != "" {
		opts = append(opts, option.WithoutAuthentication())
	} else {
		opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs: crear cliente: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

// Save sobrescribe el objeto si ya existe. Si la copia falla, el objeto anterior se
// conserva: se cancela el contexto del writer antes de cerrarlo.
func (s *GCSStore) Save(ctx context.Context, key string, r io.Reader) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(s.object(key)).NewWriter(ctx)
	if _, err := io.Copy(w, r); err != nil {
		cancel()
		_ = w.Close()
		return fmt.Errorf("%w: gcs escribir %s: %v", domain.ErrIO, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: gcs cerrar %s: %v", domain.ErrIO, key, err)
	}
	return nil
}

// Open devuelve domain.ErrNotFound si el objeto no existe.
func (s *GCSStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	rc, err := s.client.Bucket(s.bucket).Object(s.object(key)).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("%w: gcs leer %s: %v", domain.ErrIO, key, err)
	}
	return rc, nil
}

// Delete devuelve domain.ErrNotFound si el objeto no existe.
func (s *GCSStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Bucket(s.bucket).Object(s.object(key)).Delete(ctx); err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("%w: gcs borrar %s: %v", domain.ErrIO, key, err)
	}
	return nil
}

// Close libera el cliente.
func (s *GCSStore) Close() error {
	return s.client.Close()
}

func (s *GCSStore) object(key string) string {
	if s.prefix == "" {
		return key
	}
	return path.Join(s.prefix, key)
}
