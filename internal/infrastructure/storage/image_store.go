package storage

import (
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jhoicas/catalogo-erp/internal/application/importer"
	"github.com/jhoicas/catalogo-erp/pkg/config"
)

var _ importer.ImageStore = (*ImageStore)(nil)

// ImageStore guarda imágenes bajo una raíz de disco y las publica bajo un prefijo de URL:
// {root}/{folder}/{name} se sirve como {prefix}/{folder}/{name}.
type ImageStore struct {
	fs     afero.Fs
	root   string
	prefix string
}

// NewImageStore construye el almacén sobre fs (afero.NewOsFs en producción).
func NewImageStore(fs afero.Fs, cfg config.StorageConfig) *ImageStore {
	return &ImageStore{fs: fs, root: cfg.Root, prefix: cfg.URLPrefix}
}

// Save escribe el archivo (sobrescribe si existe) y devuelve su URL pública.
func (s *ImageStore) Save(folder, name string, data []byte) (string, error) {
	dir := filepath.Join(s.root, folder)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image dir: %w", err)
	}
	if err := afero.WriteFile(s.fs, s.Path(folder, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return s.URL(folder, name), nil
}

// Path ruta en disco de una imagen.
func (s *ImageStore) Path(folder, name string) string {
	return filepath.Join(s.root, folder, name)
}

// URL dirección pública de una imagen.
func (s *ImageStore) URL(folder, name string) string {
	return s.prefix + "/" + path.Join(folder, name)
}

// Open lee una imagen guardada; os.ErrNotExist si no está.
func (s *ImageStore) Open(folder, name string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.Path(folder, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}
