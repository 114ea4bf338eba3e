package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"back2u/internal/common"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension bounds the width and height of stored item photos.
	MaxDimension = 1024
	// AvatarSize is the edge of the square avatar thumbnail.
	AvatarSize  = 300
	JPEGQuality = 85
)

var allowedMIME = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

var ErrUnsupportedImage = common.Newf(common.ErrValidation, "only JPEG and PNG images are allowed")

func decode(data []byte) (image.Image, error) {
	if !allowedMIME[http.DetectContentType(data)] {
		return nil, ErrUnsupportedImage
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", ErrUnsupportedImage)
	}
	return img, nil
}

func encode(img image.Image) (File, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return File{}, fmt.Errorf("encoding JPEG: %w", err)
	}
	return File{Data: buf.Bytes(), ContentType: "image/jpeg"}, nil
}

// NormalizeImage sniffs f, downscales it to fit MaxDimension and re-encodes
// it as JPEG. The filename is kept.
func NormalizeImage(f File) (File, error) {
	img, err := decode(f.Data)
	if err != nil {
		return File{}, err
	}
	out, err := encode(downscale(img, MaxDimension))
	if err != nil {
		return File{}, err
	}
	out.Filename = f.Filename
	return out, nil
}

// NormalizeAvatar centre-crops f to a square and scales it to AvatarSize.
func NormalizeAvatar(f File) (File, error) {
	img, err := decode(f.Data)
	if err != nil {
		return File{}, err
	}
	out, err := encode(fill(img, AvatarSize))
	if err != nil {
		return File{}, err
	}
	out.Filename = f.Filename
	return out, nil
}

// downscale preserves the aspect ratio and never upscales.
func downscale(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxDim && h <= maxDim {
		return img
	}

	newW, newH := w, h
	if w > h {
		newW = maxDim
		newH = int(float64(h) * float64(maxDim) / float64(w))
	} else {
		newH = maxDim
		newW = int(float64(w) * float64(maxDim) / float64(h))
	}
	newW, newH = max(newW, 1), max(newH, 1)

	dst := image.NewRGBA(image.Rect(0, 0, newW, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// fill crops the largest centred square out of img and scales it to size×size.
func fill(img image.Image, size int) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())
	x0 := b.Min.X + (b.Dx()-side)/2
	y0 := b.Min.Y + (b.Dy()-side)/2
	src := image.Rect(x0, y0, x0+side, y0+side)

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Over, nil)
	return dst
}
