// Package contrast applies fixed-factor linear contrast enhancement to
// page rasters.
//
// The conversion pipeline calls it only for pages where an overlay was
// removed: white-filling a region flattens local contrast, and a small
// boost restores visual balance without materially altering the rest of
// the page.
package contrast

import "image"

// DefaultFactor is the boost applied after an overlay removal. 1.0 is
// the identity.
const DefaultFactor = 1.05

// Enhance scales the contrast of img in place by blending every channel
// toward the solid gray of the image's mean luminance:
//
//	out = mean + factor*(in - mean)
//
// clamped to [0, 255]. Alpha is left untouched. A factor of 1.0 leaves
// the image unchanged; factors above 1.0 increase contrast.
func Enhance(img *image.RGBA, factor float64) {
	b := img.Bounds()
	if b.Empty() {
		return
	}
	mean := float64(meanLuminance(img))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			p := img.Pix[row+x*4 : row+x*4+3 : row+x*4+3]
			for c := range p {
				p[c] = clamp(mean + factor*(float64(p[c])-mean))
			}
		}
	}
}

// meanLuminance returns the rounded mean of the Rec. 601 luminance over
// the whole image, the neutral gray the blend pivots around.
func meanLuminance(img *image.RGBA) int {
	b := img.Bounds()
	var sum uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.PixOffset(b.Min.X, y)
		for x := 0; x < b.Dx(); x++ {
			p := img.Pix[row+x*4 : row+x*4+3 : row+x*4+3]
			sum += uint64((299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2]) + 500) / 1000)
		}
	}
	n := uint64(b.Dx()) * uint64(b.Dy())
	return int((sum + n/2) / n)
}

func clamp(v float64) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	}
	return uint8(v + 0.5)
}
