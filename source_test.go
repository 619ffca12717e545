package rawpix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSourceVariants(t *testing.T) {
	fs := FileSource("/photos/img_0001.nef")
	path, ok := fs.Path()
	assert.True(t, ok)
	assert.Equal(t, "/photos/img_0001.nef", path)
	_, ok = fs.Buffer()
	assert.False(t, ok)

	bs := BufferSource([]byte{0x49, 0x49})
	buf, ok := bs.Buffer()
	assert.True(t, ok)
	assert.Len(t, buf, 2)
	_, ok = bs.Path()
	assert.False(t, ok)

	var zero Source
	_, ok = zero.Path()
	assert.False(t, ok)
	_, ok = zero.Buffer()
	assert.False(t, ok)
	assert.Equal(t, "<empty>", zero.String())
}
