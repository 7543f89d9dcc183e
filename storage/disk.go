package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// DiskStorage writes uploads below root, one directory per namespace.
type DiskStorage struct {
	root string
}

func NewDiskStorage(root string) *DiskStorage {
	return &DiskStorage{root: root}
}

func (d *DiskStorage) Store(namespace, filename string, r io.Reader, _ string) (string, error) {
	dir := filepath.Join(d.root, namespace)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	stored := storedName(filename)
	out, err := os.Create(filepath.Join(dir, stored))
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, r); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return stored, nil
}

func (d *DiskStorage) Delete(namespace, stored string) error {
	if stored == "" {
		return nil
	}
	err := os.Remove(filepath.Join(d.root, namespace, stored))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
