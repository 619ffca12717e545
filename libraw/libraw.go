// Package libraw binds the LibRaw C library as a rawpix.Codec.
package libraw

/*
#cgo LDFLAGS: -lraw
#include <stdlib.h>
#include <libraw/libraw.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/rawpix/rawpix"
)

var (
	ErrInitFailure = errors.New("libraw: unable to allocate a processor")
)

// Error wraps a LibRaw status code.
type Error struct {
	Code int
}

func (e *Error) Error() string {
	return fmt.Sprintf("libraw: %s (%d)", C.GoString(C.libraw_strerror(C.int(e.Code))), e.Code)
}

func code(ret C.int) error {
	if ret == C.LIBRAW_SUCCESS {
		return nil
	}
	return &Error{Code: int(ret)}
}

// Codec implements rawpix.Codec on top of LibRaw. The zero value is ready
// to use; every Open allocates its own libraw processor, so sessions are
// independent and may run on different goroutines.
type Codec struct{}

func (Codec) Version() string {
	return C.GoString(C.libraw_version())
}

func (Codec) Open(src rawpix.Source) (rawpix.Raw, error) {
	lr := C.libraw_init(0)
	if lr == nil {
		return nil, ErrInitFailure
	}
	h := &handle{lr: lr}

	if path, ok := src.Path(); ok {
		cpath := C.CString(path)
		defer C.free(unsafe.Pointer(cpath))

		if err := code(C.libraw_open_file(lr, cpath)); err != nil {
			h.Close()
			return nil, err
		}
		return h, nil
	}

	buf, ok := src.Buffer()
	if !ok || len(buf) == 0 {
		h.Close()
		return nil, rawpix.ErrInvalidImageData
	}

	// LibRaw keeps reading from the buffer until the processor is
	// recycled, so it has to live in C memory for the whole session.
	h.buf = C.CBytes(buf)
	if err := code(C.libraw_open_buffer(lr, h.buf, C.size_t(len(buf)))); err != nil {
		h.Close()
		return nil, err
	}
	return h, nil
}

// handle is one open LibRaw session.
type handle struct {
	lr  *C.libraw_data_t
	buf unsafe.Pointer
}

func (h *handle) UnpackThumbnail() error {
	return code(C.libraw_unpack_thumb(h.lr))
}

func (h *handle) Thumbnail() (*rawpix.Payload, error) {
	var errc C.int
	thumb := C.libraw_dcraw_make_mem_thumb(h.lr, &errc)
	if thumb == nil {
		if errc != 0 {
			return nil, &Error{Code: int(errc)}
		}
		return nil, rawpix.ErrNoThumbnail
	}
	defer C.libraw_dcraw_clear_mem(thumb)

	return payload(thumb), nil
}

func (h *handle) Configure(p rawpix.Params) {
	if p.UseCameraWB {
		h.lr.params.use_camera_wb = 1
	}
	if p.HalfSize {
		h.lr.params.half_size = 1
	} else {
		h.lr.params.half_size = 0
	}
	if p.OutputBits > 0 {
		h.lr.params.output_bps = C.int(p.OutputBits)
	}
	if p.OutputColor != rawpix.ColorDefault {
		h.lr.params.output_color = C.int(p.OutputColor)
	}
}

func (h *handle) Unpack() error {
	return code(C.libraw_unpack(h.lr))
}

func (h *handle) Render() error {
	return code(C.libraw_dcraw_process(h.lr))
}

func (h *handle) Image() (*rawpix.Payload, error) {
	var errc C.int
	img := C.libraw_dcraw_make_mem_image(h.lr, &errc)
	if img == nil {
		if errc != 0 {
			return nil, &Error{Code: int(errc)}
		}
		return nil, rawpix.ErrInvalidImageData
	}
	defer C.libraw_dcraw_clear_mem(img)

	return payload(img), nil
}

func (h *handle) Close() {
	if h.lr != nil {
		C.libraw_recycle(h.lr)
		C.libraw_close(h.lr)
		h.lr = nil
	}
	if h.buf != nil {
		C.free(h.buf)
		h.buf = nil
	}
}

// payload copies a libraw_processed_image_t into Go-owned memory. The
// caller still has to clear the C-side image.
func payload(img *C.libraw_processed_image_t) *rawpix.Payload {
	p := &rawpix.Payload{
		Data: C.GoBytes(unsafe.Pointer(&img.data[0]), C.int(img.data_size)),
	}
	switch img._type {
	case C.LIBRAW_IMAGE_BITMAP:
		p.Kind = rawpix.KindBitmap
		p.Width = int(img.width)
		p.Height = int(img.height)
	default:
		// LIBRAW_IMAGE_JPEG and anything the library grows later; the
		// bytes carry their own dimensions.
		p.Kind = rawpix.KindEncoded
	}
	return p
}
