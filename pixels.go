package rawpix

import "image"

// ReverseChannels returns a copy of a 3-channel 8-bit interleaved pixel
// buffer with the channel order flipped per pixel: [c0,c1,c2] becomes
// [c2,c1,c0]. Applied to the codec's RGB output this yields BGR, which is
// the order the consuming display layers decode raw bitmaps in. The
// transform is its own inverse.
//
// Trailing bytes beyond the last whole pixel are ignored; the returned
// buffer always holds len(pix)/3 pixels.
func ReverseChannels(pix []byte) []byte {
	n := len(pix) / 3 * 3
	out := make([]byte, n)
	for i := 0; i < n; i += 3 {
		out[i] = pix[i+2]
		out[i+1] = pix[i+1]
		out[i+2] = pix[i]
	}
	return out
}

// BitmapImage converts a channel-reversed extractor bitmap into a stdlib
// image, undoing the reversal on the way in. Useful for re-encoding
// previews with the standard image codecs.
func BitmapImage(data []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i+2 < len(data) && j+3 < len(img.Pix); i, j = i+3, j+4 {
		img.Pix[j] = data[i+2]
		img.Pix[j+1] = data[i+1]
		img.Pix[j+2] = data[i]
		img.Pix[j+3] = 0xff
	}
	return img
}
