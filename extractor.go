package rawpix

import (
	"time"

	"github.com/rcrowley/go-metrics"
	"github.com/sirupsen/logrus"
)

// Extractor turns a raw Source into a displayable thumbnail or preview by
// driving a Codec through its open/unpack/render sequence. Each call opens
// its own codec session and releases it before returning, so one Extractor
// may be shared across goroutines.
type Extractor struct {
	codec Codec
}

func NewExtractor(codec Codec) *Extractor {
	return &Extractor{codec: codec}
}

// Thumbnail extracts the embedded thumbnail from src. When the file has no
// usable embedded thumbnail it falls back to a half-size camera-WB render,
// which is slower but better than nothing. Encoded payloads are returned
// verbatim; bitmap payloads (including the fallback render) are
// channel-reversed for the display layer.
func (ex *Extractor) Thumbnail(src Source) (*Thumbnail, error) {
	m := metrics.GetOrRegisterTimer("fn.extract.Thumbnail", nil)
	defer m.UpdateSince(time.Now())

	raw, err := ex.codec.Open(src)
	if err != nil {
		logrus.Debugf("rawpix: open %s failed: %v", src, err)
		return nil, err
	}
	defer raw.Close()

	tn, err := embeddedThumbnail(raw)
	if err == nil {
		return tn, nil
	}
	logrus.Debugf("rawpix: no embedded thumbnail in %s (%v), rendering preview", src, err)

	p, err := render(raw, Params{
		UseCameraWB: true,
		HalfSize:    true, // half size for speed
		OutputBits:  8,
	})
	if err != nil {
		logrus.Warnf("rawpix: thumbnail fallback render for %s failed: %v", src, err)
		return nil, err
	}

	return &Thumbnail{Data: p.Data, Width: p.Width, Height: p.Height, Kind: KindBitmap}, nil
}

// Preview renders src through the full demosaic pipeline with camera white
// balance, 8-bit sRGB output and optionally half resolution. There is no
// embedded-thumbnail shortcut and no fallback: any failed stage is
// terminal for the call.
func (ex *Extractor) Preview(src Source, halfSize bool) (*Preview, error) {
	m := metrics.GetOrRegisterTimer("fn.extract.Preview", nil)
	defer m.UpdateSince(time.Now())

	raw, err := ex.codec.Open(src)
	if err != nil {
		logrus.Debugf("rawpix: open %s failed: %v", src, err)
		return nil, err
	}
	defer raw.Close()

	p, err := render(raw, Params{
		UseCameraWB: true,
		HalfSize:    halfSize,
		OutputBits:  8,
		OutputColor: ColorSRGB,
	})
	if err != nil {
		logrus.Warnf("rawpix: preview render for %s failed: %v", src, err)
		return nil, err
	}

	return &Preview{Data: p.Data, Width: p.Width, Height: p.Height}, nil
}

func embeddedThumbnail(raw Raw) (*Thumbnail, error) {
	if err := raw.UnpackThumbnail(); err != nil {
		return nil, err
	}
	p, err := raw.Thumbnail()
	if err != nil {
		return nil, err
	}

	// Embedded payloads are passed through verbatim, in their native
	// encoding and channel order. Only rendered bitmaps get reversed.
	tn := &Thumbnail{Data: p.Data, Kind: p.Kind}
	if p.Kind == KindBitmap {
		tn.Width, tn.Height = p.Width, p.Height
	}
	return tn, nil
}

// render runs the configure→unpack→demosaic→materialize sequence and
// converts the resulting bitmap to the reversed channel order.
func render(raw Raw, params Params) (*Payload, error) {
	raw.Configure(params)

	if err := raw.Unpack(); err != nil {
		return nil, err
	}
	if err := raw.Render(); err != nil {
		return nil, err
	}

	img, err := raw.Image()
	if err != nil {
		return nil, err
	}
	if img.Kind != KindBitmap || len(img.Data) < img.Width*img.Height*3 {
		return nil, ErrInvalidImageData
	}

	return &Payload{
		Data:   ReverseChannels(img.Data[:img.Width*img.Height*3]),
		Width:  img.Width,
		Height: img.Height,
		Kind:   KindBitmap,
	}, nil
}
