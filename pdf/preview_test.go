package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRoundTrip(t *testing.T) {
	e, err := NewExporter()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Export(context.Background(), &buf,
		[]Page{page(t, 60, 80), page(t, 80, 60), page(t, 60, 80)}))

	p, err := OpenPreviewBytes(buf.Bytes())
	if err != nil {
		t.Skipf("MuPDF unavailable: %v", err)
	}
	defer p.Close()

	assert.Equal(t, 3, p.PageCount())

	img, err := p.RenderPage(1, 36)
	require.NoError(t, err)
	assert.Greater(t, img.Width(), img.Height(), "landscape image gets a landscape page")

	_, err = p.RenderPage(3, 0)
	assert.ErrorIs(t, err, ErrPageRange)
}
