// Command librawpix builds the C-callable preview extraction library:
//
//	go build -buildmode=c-shared -o librawpix.so ./cmd/librawpix
//
// Callers own every returned data pointer and must hand it to free_buffer
// exactly once. Failures are reported as zeroed result structs; no error
// ever crosses the boundary any other way.
package main

/*
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	uint8_t* data;
	int32_t  size;
	int32_t  width;
	int32_t  height;
	int32_t  format; // 0: encoded (JPEG), 1: RGB bitmap
} thumbnail_result_t;

typedef struct {
	uint8_t* data; // BGR bitmap data
	int32_t  size;
	int32_t  width;
	int32_t  height;
} image_result_t;
*/
import "C"

import (
	"unsafe"

	"github.com/rawpix/rawpix"
	"github.com/rawpix/rawpix/libraw"
)

var extractor = rawpix.NewExtractor(libraw.Codec{})

//export get_thumbnail
func get_thumbnail(path *C.char) C.thumbnail_result_t {
	tn, err := extractor.Thumbnail(rawpix.FileSource(C.GoString(path)))
	return thumbnailResult(tn, err)
}

//export get_thumbnail_from_buffer
func get_thumbnail_from_buffer(buf *C.uint8_t, size C.size_t) C.thumbnail_result_t {
	tn, err := extractor.Thumbnail(rawpix.BufferSource(goBytes(buf, size)))
	return thumbnailResult(tn, err)
}

//export get_preview
func get_preview(path *C.char, halfSize C.int) C.image_result_t {
	pv, err := extractor.Preview(rawpix.FileSource(C.GoString(path)), halfSize != 0)
	return imageResult(pv, err)
}

//export get_preview_from_buffer
func get_preview_from_buffer(buf *C.uint8_t, size C.size_t, halfSize C.int) C.image_result_t {
	pv, err := extractor.Preview(rawpix.BufferSource(goBytes(buf, size)), halfSize != 0)
	return imageResult(pv, err)
}

//export free_buffer
func free_buffer(buf *C.uint8_t) {
	if buf != nil {
		C.free(unsafe.Pointer(buf))
	}
}

func thumbnailResult(tn *rawpix.Thumbnail, err error) C.thumbnail_result_t {
	var res C.thumbnail_result_t
	if err != nil || tn == nil {
		return res
	}
	res.size = C.int32_t(len(tn.Data))
	res.width = C.int32_t(tn.Width)
	res.height = C.int32_t(tn.Height)
	res.format = C.int32_t(tn.Kind)
	res.data = copyToC(tn.Data)
	return res
}

func imageResult(pv *rawpix.Preview, err error) C.image_result_t {
	var res C.image_result_t
	if err != nil || pv == nil {
		return res
	}
	res.size = C.int32_t(len(pv.Data))
	res.width = C.int32_t(pv.Width)
	res.height = C.int32_t(pv.Height)
	res.data = copyToC(pv.Data)
	return res
}

// copyToC moves a payload onto the C heap, transferring ownership to the
// caller. On malloc failure the result keeps its size with a NULL data
// pointer; callers are expected to check the pointer, not just the size.
func copyToC(b []byte) *C.uint8_t {
	if len(b) == 0 {
		return nil
	}
	p := C.malloc(C.size_t(len(b)))
	if p == nil {
		return nil
	}
	C.memcpy(p, unsafe.Pointer(&b[0]), C.size_t(len(b)))
	return (*C.uint8_t)(p)
}

func goBytes(buf *C.uint8_t, size C.size_t) []byte {
	if buf == nil || size == 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(buf), C.int(size))
}

func main() {}
