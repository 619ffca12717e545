package rawpix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReverseChannels(t *testing.T) {
	// 2x2 synthetic RGB pixels.
	src := []byte{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
	}
	out := ReverseChannels(src)

	assert.Equal(t, []byte{
		3, 2, 1, 6, 5, 4,
		9, 8, 7, 12, 11, 10,
	}, out)

	// The source buffer is left untouched.
	assert.Equal(t, byte(1), src[0])
}

func TestReverseChannelsInvolution(t *testing.T) {
	src := make([]byte, 3*257)
	for i := range src {
		src[i] = byte(i * 31)
	}
	assert.Equal(t, src, ReverseChannels(ReverseChannels(src)))
}

func TestReverseChannelsEmpty(t *testing.T) {
	assert.Empty(t, ReverseChannels(nil))
	assert.Empty(t, ReverseChannels([]byte{}))
}

func TestReverseChannelsTruncated(t *testing.T) {
	// Trailing bytes beyond the last whole pixel are dropped.
	out := ReverseChannels([]byte{1, 2, 3, 4, 5})
	assert.Equal(t, []byte{3, 2, 1}, out)
}
