package server

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/nfnt/resize"
	"github.com/rcrowley/go-metrics"

	"github.com/rawpix/rawpix"
)

var MimeTypes = map[string]string{
	"jpeg": "image/jpeg",
	"jpg":  "image/jpeg",
	"png":  "image/png",
}

// Image is a decoded preview in an HTTP-servable encoding.
type Image struct {
	File   string `json:"file"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
	Bytes  int    `json:"bytes"`
	Data   []byte `json:"-"`
}

func (im *Image) MimeType() string {
	mt := MimeTypes[im.Format]
	if mt == "" {
		mt = "application/octet-stream"
	}
	return mt
}

// thumbnailImage wraps an extracted thumbnail for serving. Camera-encoded
// payloads pass through verbatim as JPEG; bitmap payloads (the fallback
// render) are encoded to PNG.
func thumbnailImage(file string, tn *rawpix.Thumbnail) (*Image, error) {
	m := metrics.GetOrRegisterTimer("fn.image.Thumbnail", nil)
	defer m.UpdateSince(time.Now())

	im := &Image{File: file, Width: tn.Width, Height: tn.Height}

	if tn.Kind == rawpix.KindEncoded {
		im.Format = "jpeg"
		im.Data = tn.Data
		im.Bytes = len(tn.Data)
		return im, nil
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, rawpix.BitmapImage(tn.Data, tn.Width, tn.Height)); err != nil {
		return nil, err
	}
	im.Format = "png"
	im.Data = buf.Bytes()
	im.Bytes = buf.Len()
	return im, nil
}

// previewImage encodes a rendered preview to JPEG, downscaling first when
// the sizing asks for a smaller width.
func previewImage(file string, pv *rawpix.Preview, sz *Sizing) (*Image, error) {
	m := metrics.GetOrRegisterTimer("fn.image.Preview", nil)
	defer m.UpdateSince(time.Now())

	var img image.Image = rawpix.BitmapImage(pv.Data, pv.Width, pv.Height)
	if sz.Width > 0 && sz.Width < pv.Width {
		img = resize.Resize(uint(sz.Width), 0, img, resize.Lanczos3)
	}

	b := img.Bounds()
	im := &Image{File: file, Width: b.Dx(), Height: b.Dy(), Format: "jpeg"}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: sz.Quality}); err != nil {
		return nil, err
	}
	im.Data = buf.Bytes()
	im.Bytes = buf.Len()
	return im, nil
}

