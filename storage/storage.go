package storage

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage namespaces, one per entity type that carries uploaded images.
const (
	NamespaceProducts    = "products"
	NamespaceCompanies   = "companies"
	NamespaceUsers       = "users"
	NamespaceSocialMedia = "social_media"
)

// Storage puts uploaded bytes under a namespace and hands back the stored
// filename. Deletes are by stored filename; a missing file is not an error.
type Storage interface {
	Store(namespace, filename string, r io.Reader, contentType string) (string, error)
	Delete(namespace, stored string) error
}

// storedName keeps the original extension but replaces the client-chosen
// name, so collisions stay impossible within a namespace.
func storedName(filename string) string {
	return uuid.New().String() + strings.ToLower(filepath.Ext(filename))
}

// Resolver maps a stored filename to its public URL. An empty filename
// resolves to an empty URL.
type Resolver struct {
	baseURL string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *Resolver) URL(namespace, stored string) string {
	if stored == "" {
		return ""
	}
	return r.baseURL + "/uploads/images/" + namespace + "/" + stored
}

// URLs resolves a list of stored filenames in order.
func (r *Resolver) URLs(namespace string, stored []string) []string {
	urls := make([]string, 0, len(stored))
	for _, name := range stored {
		urls = append(urls, r.URL(namespace, name))
	}
	return urls
}
