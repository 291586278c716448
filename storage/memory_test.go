package storage

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/docscan"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	m := NewMemoryStore()
	img := testImage(t, 8, 8)

	handle, err := m.Save(context.Background(), img, "cropped_1")
	require.NoError(t, err)
	assert.Equal(t, "mem://cropped_1", handle)

	got, err := m.Load(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, img.Data(), got.Data())

	got.Fill(0, 0, 0, 0)
	again, err := m.Load(context.Background(), handle)
	require.NoError(t, err)
	assert.Equal(t, img.Data(), again.Data(), "Load returns a copy")
}

func TestMemoryStoreErrors(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.Load(context.Background(), "mem://missing")
	assert.ErrorIs(t, err, docscan.ErrNotFound)

	_, err = m.Save(context.Background(), nil, "x")
	assert.ErrorIs(t, err, docscan.ErrEncodeFailure)

	_, err = m.Save(context.Background(), testImage(t, 1, 1), "")
	assert.ErrorIs(t, err, docscan.ErrEncodeFailure)
	assert.Zero(t, m.Len())
}

func TestMemoryStoreHandles(t *testing.T) {
	m := NewMemoryStore()
	m.Put("photo", testImage(t, 2, 2))
	_, _ = m.Save(context.Background(), testImage(t, 2, 2), "filtered_b")
	_, _ = m.Save(context.Background(), testImage(t, 2, 2), "cropped_a")

	assert.Equal(t, []string{"mem://cropped_a", "mem://filtered_b", "photo"}, m.Handles(""))
	assert.Equal(t, []string{"mem://cropped_a"}, m.Handles("mem://cropped_"))
	assert.True(t, m.Delete("photo"))
	assert.False(t, m.Delete("photo"))
	assert.Equal(t, 2, m.Len())
}

func TestMemoryStoreConcurrent(t *testing.T) {
	m := NewMemoryStore()
	img := testImage(t, 4, 4)
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := m.Save(context.Background(), img, string(rune('a'+i)))
			if assert.NoError(t, err) {
				_, err = m.Load(context.Background(), h)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 16, m.Len())
}
