package storage

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/docscan"
	"github.com/gogpu/docscan/raster"
)

// MemoryScheme prefixes handles returned by MemoryStore.Save.
const MemoryScheme = "mem://"

// MemoryStore keeps images in memory. It is both an ImageSource and an
// ImageSink, and is safe for concurrent use. Stored images are copied on
// the way in and on the way out.
type MemoryStore struct {
	mu     sync.RWMutex
	images map[string]*raster.Image
}

var (
	_ docscan.ImageSource = (*MemoryStore)(nil)
	_ docscan.ImageSink   = (*MemoryStore)(nil)
)

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: make(map[string]*raster.Image)}
}

// Put stores a copy of img under handle, replacing any previous image.
func (m *MemoryStore) Put(handle string, img *raster.Image) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.images[handle] = img.Clone()
}

// Load returns a copy of the image stored under handle.
func (m *MemoryStore) Load(ctx context.Context, handle string) (*raster.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	img, ok := m.images[handle]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", docscan.ErrNotFound, handle)
	}
	return img.Clone(), nil
}

// Save stores a copy of img and returns "mem://<name>".
func (m *MemoryStore) Save(ctx context.Context, img *raster.Image, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if img == nil {
		return "", fmt.Errorf("%w: nil image", docscan.ErrEncodeFailure)
	}
	if name == "" {
		return "", fmt.Errorf("%w: empty name", docscan.ErrEncodeFailure)
	}
	handle := MemoryScheme + name
	m.Put(handle, img)
	return handle, nil
}

// Delete removes handle. It reports whether an image was removed.
func (m *MemoryStore) Delete(handle string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.images[handle]
	delete(m.images, handle)
	return ok
}

// Handles returns the stored handles in sorted order, optionally filtered
// by prefix.
func (m *MemoryStore) Handles(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.images))
	for h := range m.images {
		if strings.HasPrefix(h, prefix) {
			out = append(out, h)
		}
	}
	slices.Sort(out)
	return out
}

// Len returns the number of stored images.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.images)
}
