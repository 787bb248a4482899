package overlay

import "image"

// Binary mask conventions: foreground is 255, background is 0, and the
// mask always has a zero origin regardless of the source raster bounds.

// grayscale converts the raster to single-channel luminance using the
// Rec. 601 weights (the conversion applied by common RGB-to-gray
// routines).
func grayscale(img *image.RGBA) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := 0; x < w; x++ {
			p := img.Pix[row+x*4 : row+x*4+3 : row+x*4+3]
			lum := (299*uint32(p[0]) + 587*uint32(p[1]) + 114*uint32(p[2]) + 500) / 1000
			out.Pix[y*out.Stride+x] = uint8(lum)
		}
	}
	return out
}

// threshold builds an inverted binary mask: pixels at or below the dark
// cutoff become foreground (255), everything else background (0).
func threshold(gray *image.Gray, dark uint8) *image.Gray {
	out := image.NewGray(gray.Bounds())
	for i, v := range gray.Pix {
		if v <= dark {
			out.Pix[i] = 255
		}
	}
	return out
}

// closing merges nearby foreground fragments into solid blobs and fills
// small gaps: dilate then erode with a k-by-k square element.
func closing(mask *image.Gray, k int) *image.Gray {
	return erode(dilate(mask, k), k)
}

// opening strips thin noise and isolated foreground pixels that are not
// part of a large solid region: erode then dilate.
func opening(mask *image.Gray, k int) *image.Gray {
	return dilate(erode(mask, k), k)
}

// dilate grows foreground by a k-by-k square element. Pixels beyond the
// image border count as background, so dilation never invents
// foreground at the edges.
func dilate(mask *image.Gray, k int) *image.Gray {
	return vertPass(horizPass(mask, k, false), k, false)
}

// erode shrinks foreground by a k-by-k square element. Pixels beyond
// the border count as foreground, so the border alone never erodes a
// blob inward.
func erode(mask *image.Gray, k int) *image.Gray {
	return vertPass(horizPass(mask, k, true), k, true)
}

// A square element separates into a horizontal and a vertical 1-D run,
// each implemented with a sliding foreground count. For erosion the
// output is foreground only when every in-bounds pixel of the window
// is; for dilation, when any is.

func horizPass(src *image.Gray, k int, all bool) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	left, right := k/2, k-1-k/2
	dst := image.NewGray(b)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		count := 0
		for x := 0; x <= right && x < w; x++ {
			if row[x] != 0 {
				count++
			}
		}
		for x := 0; x < w; x++ {
			lo, hi := x-left, x+right
			if lo < 0 {
				lo = 0
			}
			if hi > w-1 {
				hi = w - 1
			}
			if keep(count, hi-lo+1, all) {
				dst.Pix[y*dst.Stride+x] = 255
			}
			if x-left >= 0 && row[x-left] != 0 {
				count--
			}
			if x+right+1 < w && row[x+right+1] != 0 {
				count++
			}
		}
	}
	return dst
}

func vertPass(src *image.Gray, k int, all bool) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	top, bottom := k/2, k-1-k/2
	dst := image.NewGray(b)
	for x := 0; x < w; x++ {
		count := 0
		for y := 0; y <= bottom && y < h; y++ {
			if src.Pix[y*src.Stride+x] != 0 {
				count++
			}
		}
		for y := 0; y < h; y++ {
			lo, hi := y-top, y+bottom
			if lo < 0 {
				lo = 0
			}
			if hi > h-1 {
				hi = h - 1
			}
			if keep(count, hi-lo+1, all) {
				dst.Pix[y*dst.Stride+x] = 255
			}
			if y-top >= 0 && src.Pix[(y-top)*src.Stride+x] != 0 {
				count--
			}
			if y+bottom+1 < h && src.Pix[(y+bottom+1)*src.Stride+x] != 0 {
				count++
			}
		}
	}
	return dst
}

func keep(count, window int, all bool) bool {
	if all {
		return count == window
	}
	return count > 0
}
