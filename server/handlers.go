package server

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/pressly/lg"

	"github.com/rawpix/rawpix"
)

var (
	ErrNoFile      = errors.New("no file specified")
	ErrOutsideRoot = errors.New("file is outside the photo library")
)

// libraryPath resolves a request-supplied relative path inside the
// configured photo library, rejecting anything that escapes it.
func (srv *Server) libraryPath(file string) (string, error) {
	if file == "" {
		return "", ErrNoFile
	}

	root := srv.Config.Library.Path
	full := filepath.Join(root, filepath.Clean("/"+file))
	if full != root && !strings.HasPrefix(full, root+string(filepath.Separator)) {
		return "", ErrOutsideRoot
	}
	return full, nil
}

func GetThumbnail(w http.ResponseWriter, r *http.Request) {
	file, err := app.libraryPath(r.URL.Query().Get("file"))
	if err != nil {
		respond.ImageError(w, 422, err)
		return
	}

	tn, err := app.Extractor.Thumbnail(rawpix.FileSource(file))
	if err != nil {
		lg.Errorf("thumbnail extraction failed for %s: %s", file, err)
		respond.ImageError(w, 422, rawpix.ErrInvalidImageData)
		return
	}

	im, err := thumbnailImage(r.URL.Query().Get("file"), tn)
	if err != nil {
		respond.ImageError(w, 422, err)
		return
	}
	respond.Image(w, 200, im)
}

func GetPreview(w http.ResponseWriter, r *http.Request) {
	file, err := app.libraryPath(r.URL.Query().Get("file"))
	if err != nil {
		respond.ImageError(w, 422, err)
		return
	}

	sz, err := NewSizingFromQuery(r.URL.Query(), app.Config)
	if err != nil {
		respond.ImageError(w, 422, err)
		return
	}

	pv, err := app.Extractor.Preview(rawpix.FileSource(file), sz.Half)
	if err != nil {
		lg.Errorf("preview render failed for %s: %s", file, err)
		respond.ImageError(w, 422, rawpix.ErrInvalidImageData)
		return
	}

	im, err := previewImage(r.URL.Query().Get("file"), pv, sz)
	if err != nil {
		respond.ImageError(w, 422, err)
		return
	}
	respond.Image(w, 200, im)
}

// GetRawInfo reports what a thumbnail request for the file would return,
// without the payload.
func GetRawInfo(w http.ResponseWriter, r *http.Request) {
	file, err := app.libraryPath(r.URL.Query().Get("file"))
	if err != nil {
		respond.ApiError(w, 422, err)
		return
	}

	tn, err := app.Extractor.Thumbnail(rawpix.FileSource(file))
	if err != nil {
		respond.ApiError(w, 422, rawpix.ErrInvalidImageData)
		return
	}

	im, err := thumbnailImage(r.URL.Query().Get("file"), tn)
	if err != nil {
		respond.ApiError(w, 422, err)
		return
	}

	w.Header().Set("X-Meta-Width", fmt.Sprintf("%d", im.Width))
	w.Header().Set("X-Meta-Height", fmt.Sprintf("%d", im.Height))
	respond.JSON(w, 200, im)
}
