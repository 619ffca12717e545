package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/nfnt/resize"

	"github.com/rawpix/rawpix"
	"github.com/rawpix/rawpix/libraw"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "thumb":
		if err := runThumb(os.Args[2:]); err != nil {
			fail(err)
		}
	case "preview":
		if err := runPreview(os.Args[2:]); err != nil {
			fail(err)
		}
	case "version":
		fmt.Printf("rawpix v%s (libraw %s)\n", rawpix.VERSION, libraw.Codec{}.Version())
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: rawpix <command> [args]")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  thumb   -in photo.nef -out thumb.jpg")
	fmt.Fprintln(os.Stderr, "  preview -in photo.nef -out preview.jpg [-full] [-width 1600] [-q 85]")
	fmt.Fprintln(os.Stderr, "  version")
}

func runThumb(args []string) error {
	fs := flag.NewFlagSet("thumb", flag.ContinueOnError)
	inPath := fs.String("in", "", "input raw file")
	outPath := fs.String("out", "", "output image (jpg or png)")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}

	ex := rawpix.NewExtractor(libraw.Codec{})
	tn, err := ex.Thumbnail(rawpix.FileSource(filepath.Clean(*inPath)))
	if err != nil {
		return err
	}

	// Camera-encoded thumbnails are written out verbatim.
	if tn.Kind == rawpix.KindEncoded {
		return os.WriteFile(filepath.Clean(*outPath), tn.Data, 0o644)
	}
	return writeBitmap(*outPath, rawpix.BitmapImage(tn.Data, tn.Width, tn.Height), 92)
}

func runPreview(args []string) error {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	inPath := fs.String("in", "", "input raw file")
	outPath := fs.String("out", "", "output image (jpg or png)")
	full := fs.Bool("full", false, "render at full resolution")
	width := fs.Int("width", 0, "downscale to width")
	q := fs.Int("q", 85, "jpeg quality")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *inPath == "" || *outPath == "" {
		return errors.New("missing required arguments")
	}

	ex := rawpix.NewExtractor(libraw.Codec{})
	pv, err := ex.Preview(rawpix.FileSource(filepath.Clean(*inPath)), !*full)
	if err != nil {
		return err
	}

	var img image.Image = rawpix.BitmapImage(pv.Data, pv.Width, pv.Height)
	if *width > 0 && *width < pv.Width {
		img = resize.Resize(uint(*width), 0, img, resize.Lanczos3)
	}
	return writeBitmap(*outPath, img, *q)
}

func writeBitmap(path string, img image.Image, quality int) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	default:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
