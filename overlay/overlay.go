package overlay

import (
	"image"
	"image/color"
	"image/draw"
)

// Config holds the detection thresholds. The zero value is not useful;
// start from DefaultConfig and adjust as needed.
type Config struct {
	// DarkThreshold is the luminance cutoff (0-255). Pixels at or below
	// it become mask foreground.
	DarkThreshold uint8

	// KernelSize is the side of the square structuring element used for
	// the morphological close and open passes.
	KernelSize int

	// MinAreaRatio is the minimum contour area, as a fraction of total
	// image area, for a region to be considered at all. It filters
	// detection noise and small dark graphics such as embedded photos.
	MinAreaRatio float64

	// MinWidthRatio accepts a region whose bounding box is wider than
	// this fraction of the image width.
	MinWidthRatio float64

	// MinHeightRatio accepts a region whose bounding box is taller than
	// this fraction of the image height.
	MinHeightRatio float64

	// MinBlockRatio accepts a region whose bounding box exceeds this
	// fraction of the image size on both axes.
	MinBlockRatio float64
}

// DefaultConfig returns the tuned detection thresholds.
func DefaultConfig() Config {
	return Config{
		DarkThreshold:  40,
		KernelSize:     15,
		MinAreaRatio:   0.02,
		MinWidthRatio:  0.30,
		MinHeightRatio: 0.05,
		MinBlockRatio:  0.15,
	}
}

// Remove finds large dark rectangular regions in img and fills their
// bounding rectangles with solid white, mutating img in place. It
// reports whether any region was filled. Multiple disjoint regions are
// all removed; regions are processed in raster-scan discovery order.
// When nothing qualifies the image is left untouched.
func Remove(img *image.RGBA, cfg Config) bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return false
	}

	mask := threshold(grayscale(img), cfg.DarkThreshold)
	mask = closing(mask, cfg.KernelSize)
	mask = opening(mask, cfg.KernelSize)

	minArea := cfg.MinAreaRatio * float64(w) * float64(h)
	removed := false
	for _, reg := range findRegions(mask) {
		if reg.Area < minArea {
			continue
		}
		if !accepted(reg.Rect, w, h, cfg) {
			continue
		}
		fill(img, reg.Rect.Add(b.Min))
		removed = true
	}
	return removed
}

// accepted applies the shape heuristics: wide bars, tall bars, or
// blocks large on both axes. Compact dark shapes fail all three.
func accepted(r image.Rectangle, w, h int, cfg Config) bool {
	rw, rh := float64(r.Dx()), float64(r.Dy())
	fw, fh := float64(w), float64(h)
	if rw > cfg.MinWidthRatio*fw {
		return true
	}
	if rh > cfg.MinHeightRatio*fh {
		return true
	}
	return rh > cfg.MinBlockRatio*fh && rw > cfg.MinBlockRatio*fw
}

// fill paints the rectangle solid white on the raster.
func fill(img *image.RGBA, r image.Rectangle) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(color.White), image.Point{}, draw.Src)
}
