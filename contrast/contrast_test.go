package contrast

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

// split returns a raster whose left half is one gray level and right
// half another, giving a known mean luminance.
func split(w, h int, left, right uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, image.Rect(0, 0, w/2, h), image.NewUniform(color.Gray{Y: left}), image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(w/2, 0, w, h), image.NewUniform(color.Gray{Y: right}), image.Point{}, draw.Src)
	return img
}

func TestEnhanceIdentity(t *testing.T) {
	img := split(20, 10, 80, 190)
	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	Enhance(img, 1.0)
	if !bytes.Equal(before, img.Pix) {
		t.Error("factor 1.0 must leave the raster unchanged")
	}
}

func TestEnhanceScalesAroundMean(t *testing.T) {
	// Equal halves at 100 and 200: mean luminance 150. Factor 2 pushes
	// them to 50 and 250.
	img := split(20, 10, 100, 200)
	Enhance(img, 2.0)

	r, _, _, _ := img.At(2, 5).RGBA()
	if got := uint8(r >> 8); got != 50 {
		t.Errorf("dark half = %d, want 50", got)
	}
	r, _, _, _ = img.At(17, 5).RGBA()
	if got := uint8(r >> 8); got != 250 {
		t.Errorf("bright half = %d, want 250", got)
	}
}

func TestEnhanceClamps(t *testing.T) {
	img := split(20, 10, 100, 200)
	Enhance(img, 10.0)

	r, _, _, _ := img.At(2, 5).RGBA()
	if got := uint8(r >> 8); got != 0 {
		t.Errorf("dark half = %d, want 0 after clamping", got)
	}
	r, _, _, _ = img.At(17, 5).RGBA()
	if got := uint8(r >> 8); got != 255 {
		t.Errorf("bright half = %d, want 255 after clamping", got)
	}
}

func TestEnhanceUniformImageStable(t *testing.T) {
	// A uniform image blends toward its own mean and never changes,
	// whatever the factor.
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.Gray{Y: 120}), image.Point{}, draw.Src)
	before := make([]byte, len(img.Pix))
	copy(before, img.Pix)

	Enhance(img, 3.0)
	if !bytes.Equal(before, img.Pix) {
		t.Error("uniform raster changed under contrast enhancement")
	}
}

func TestEnhanceEmptyImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 0, 0))
	Enhance(img, 1.05) // must not panic
}
