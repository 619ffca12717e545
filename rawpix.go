package rawpix

import "errors"

const (
	VERSION = "1.0.0"
)

var (
	ErrInvalidImageData = errors.New("invalid raw image data")
	ErrNoThumbnail      = errors.New("no embedded thumbnail")
)

// PayloadKind tags the byte layout of a materialized image payload.
type PayloadKind int

const (
	// KindEncoded is a camera-encoded payload, typically JPEG. The bytes
	// carry their own dimensions, so Width/Height are zero.
	KindEncoded PayloadKind = iota

	// KindBitmap is an 8-bit, 3-channel, interleaved, row-major bitmap.
	KindBitmap
)

// ColorSpace selects the codec's output color space. The zero value keeps
// the codec's default.
type ColorSpace int

const (
	ColorDefault ColorSpace = 0
	ColorSRGB    ColorSpace = 1
)

// Params are the processing knobs handed to the codec before a render.
type Params struct {
	UseCameraWB bool
	HalfSize    bool
	OutputBits  int
	OutputColor ColorSpace
}

// Codec is the external RAW decoding engine. Implementations open a
// decoding session from a Source; everything else happens on the session.
type Codec interface {
	Version() string
	Open(src Source) (Raw, error)
}

// Raw is one open decoding session. A session belongs to a single decode
// call: it is never shared across goroutines, and Close must be called on
// every exit path. All methods block on the calling goroutine.
type Raw interface {
	// UnpackThumbnail extracts the embedded thumbnail, if the file has one.
	UnpackThumbnail() error

	// Thumbnail materializes the unpacked thumbnail payload.
	Thumbnail() (*Payload, error)

	// Configure sets the processing parameters for a subsequent render.
	Configure(p Params)

	// Unpack decodes the raw sensor data.
	Unpack() error

	// Render runs the demosaic/processing stage over unpacked sensor data.
	Render() error

	// Image materializes the rendered image as an interleaved bitmap.
	Image() (*Payload, error)

	// Close resets and releases all codec state for this session.
	Close()
}

// Payload is an image materialized by the codec. Data is an owned copy;
// the codec retains no reference to it after the materializing call.
type Payload struct {
	Data   []byte
	Width  int
	Height int
	Kind   PayloadKind
}

// Thumbnail is the result of Extractor.Thumbnail. Embedded payloads keep
// their native bytes verbatim (encoded ones with zero dimensions); a
// fallback-rendered bitmap is channel-reversed (see ReverseChannels) with
// len(Data) = Width*Height*3.
type Thumbnail struct {
	Data   []byte
	Width  int
	Height int
	Kind   PayloadKind
}

// Preview is the result of Extractor.Preview: always a channel-reversed
// 8-bit interleaved bitmap with len(Data) = Width*Height*3.
type Preview struct {
	Data   []byte
	Width  int
	Height int
}
