// Package mediatest provides an in-memory object store for service tests.
package mediatest

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/delanoso/safetyhub/internal/media"
)

const baseURL = "https://storage.test/bucket/"

// PNG is the smallest header mimetype recognises as image/png.
var PNG = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

// PDF is a minimal body sniffed as application/pdf.
var PDF = []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")

// Store keeps uploaded objects in memory.
type Store struct {
	mu      sync.Mutex
	objects map[string][]byte
	// FailUploads makes every Upload return an error.
	FailUploads bool
}

func NewStore() *Store {
	return &Store{objects: map[string][]byte{}}
}

func (s *Store) Upload(_ context.Context, objectName, _ string, body []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailUploads {
		return "", errors.New("upload failed")
	}
	s.objects[objectName] = append([]byte(nil), body...)
	return baseURL + objectName, nil
}

func (s *Store) Delete(_ context.Context, objectName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *Store) ObjectName(publicURL string) (string, bool) {
	if !strings.HasPrefix(publicURL, baseURL) {
		return "", false
	}
	return strings.TrimPrefix(publicURL, baseURL), true
}

// Len reports how many objects are stored.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// Has reports whether the object behind publicURL still exists.
func (s *Store) Has(publicURL string) bool {
	name, ok := s.ObjectName(publicURL)
	if !ok {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, exists := s.objects[name]
	return exists
}

// Service wraps a fresh Store in the upload service.
func Service() (media.Service, *Store) {
	store := NewStore()
	return media.NewService(store, 10<<20, nil, nil), store
}
