package libraw

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawpix/rawpix"
)

// sampleRaw returns a camera raw file from testdata, if one has been
// dropped there. Samples are too large to keep in the repo.
func sampleRaw(t *testing.T) string {
	t.Helper()
	for _, pat := range []string{"*.nef", "*.cr2", "*.cr3", "*.arw", "*.dng", "*.raf", "*.orf"} {
		matches, _ := filepath.Glob(filepath.Join("testdata", pat))
		if len(matches) > 0 {
			return matches[0]
		}
	}
	t.Skip("no raw sample in libraw/testdata")
	return ""
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, Codec{}.Version())
}

func TestOpenMalformedBuffer(t *testing.T) {
	_, err := Codec{}.Open(rawpix.BufferSource([]byte("definitely not a raw file")))
	assert.Error(t, err)
}

func TestOpenEmptySource(t *testing.T) {
	_, err := Codec{}.Open(rawpix.Source{})
	assert.Error(t, err)
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Codec{}.Open(rawpix.FileSource("testdata/nope.nef"))
	assert.Error(t, err)
}

func TestThumbnailFromFile(t *testing.T) {
	file := sampleRaw(t)

	ex := rawpix.NewExtractor(Codec{})
	tn, err := ex.Thumbnail(rawpix.FileSource(file))
	require.NoError(t, err)
	require.NotEmpty(t, tn.Data)

	if tn.Kind == rawpix.KindBitmap {
		assert.Equal(t, tn.Width*tn.Height*3, len(tn.Data))
	} else {
		assert.Equal(t, 0, tn.Width)
		assert.Equal(t, 0, tn.Height)
	}
}

func TestThumbnailFromBufferMatchesFile(t *testing.T) {
	file := sampleRaw(t)
	data, err := os.ReadFile(file)
	require.NoError(t, err)

	ex := rawpix.NewExtractor(Codec{})
	fromFile, err := ex.Thumbnail(rawpix.FileSource(file))
	require.NoError(t, err)
	fromBuf, err := ex.Thumbnail(rawpix.BufferSource(data))
	require.NoError(t, err)

	assert.Equal(t, fromFile.Kind, fromBuf.Kind)
	assert.Equal(t, len(fromFile.Data), len(fromBuf.Data))
}

func TestPreviewResolutionMonotonic(t *testing.T) {
	file := sampleRaw(t)

	ex := rawpix.NewExtractor(Codec{})
	half, err := ex.Preview(rawpix.FileSource(file), true)
	require.NoError(t, err)
	full, err := ex.Preview(rawpix.FileSource(file), false)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, full.Width, half.Width)
	assert.GreaterOrEqual(t, full.Height, half.Height)
	assert.Equal(t, half.Width*half.Height*3, len(half.Data))
	assert.Equal(t, full.Width*full.Height*3, len(full.Data))
}
