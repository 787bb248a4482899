package overlay

import "image"

// Region is a candidate overlay: the axis-aligned bounding rectangle of
// a traced external contour plus the area enclosed by the contour
// polygon.
type Region struct {
	Rect image.Rectangle
	Area float64
}

// moore lists the 8-neighborhood in clockwise order (image coordinates,
// y grows downward), starting east.
var moore = [8]image.Point{
	{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1},
}

// findRegions extracts one Region per foreground blob in the mask by
// tracing external borders only. Holes inside a blob are never traced;
// 8-connected components count as one blob. Regions are returned in
// raster-scan discovery order, so results are deterministic for a given
// mask.
func findRegions(mask *image.Gray) []Region {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	visited := make([]bool, w*h)
	var regions []Region
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if mask.Pix[y*mask.Stride+x] == 0 || visited[y*w+x] {
				continue
			}
			// First foreground pixel of an unvisited blob. Raster order
			// guarantees its west neighbor is background, so it sits on
			// the blob's outer border.
			contour := traceBorder(mask, x, y)
			regions = append(regions, Region{
				Rect: boundingRect(contour),
				Area: contourArea(contour),
			})
			markComponent(mask, visited, x, y)
		}
	}
	return regions
}

// traceState is one step of the border walk: the current border pixel
// and the background pixel the walk backtracked from. The walk is a
// deterministic function of this pair, so revisiting a state means the
// border cycle is complete.
type traceState struct {
	cur, back image.Point
}

// traceBorder follows the outer border of the blob starting at its
// topmost-leftmost pixel using Moore neighbor tracing. The trace stops
// as soon as a walk state repeats, which also handles degenerate
// one-pixel-thick blobs where the classic stop criteria cycle.
func traceBorder(mask *image.Gray, sx, sy int) []image.Point {
	start := image.Pt(sx, sy)
	contour := []image.Point{start}

	// The raster scan reached the start pixel from the west, so its
	// west neighbor is known background.
	cur, back := start, image.Pt(sx-1, sy)
	seen := map[traceState]bool{{cur, back}: true}
	for {
		i := mooreIndex(cur, back)
		var next, nextBack image.Point
		found := false
		for j := 1; j <= 8; j++ {
			cand := cur.Add(moore[(i+j)%8])
			if foreground(mask, cand) {
				next = cand
				nextBack = cur.Add(moore[(i+j-1)%8])
				found = true
				break
			}
		}
		if !found {
			// Isolated single pixel.
			return contour
		}
		st := traceState{next, nextBack}
		if seen[st] {
			return contour
		}
		seen[st] = true
		contour = append(contour, next)
		cur, back = next, nextBack
	}
}

// mooreIndex returns the position of neighbor b in the clockwise ring
// around p.
func mooreIndex(p, b image.Point) int {
	d := b.Sub(p)
	for i, m := range moore {
		if m == d {
			return i
		}
	}
	return 4 // unreachable for adjacent points; default to west
}

func foreground(mask *image.Gray, p image.Point) bool {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	if p.X < 0 || p.Y < 0 || p.X >= w || p.Y >= h {
		return false
	}
	return mask.Pix[p.Y*mask.Stride+p.X] != 0
}

// markComponent flood-fills the 8-connected blob containing (sx, sy)
// in the visited set so the raster scan never re-traces it.
func markComponent(mask *image.Gray, visited []bool, sx, sy int) {
	w, h := mask.Bounds().Dx(), mask.Bounds().Dy()
	stack := []image.Point{{sx, sy}}
	visited[sy*w+sx] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, m := range moore {
			n := p.Add(m)
			if n.X < 0 || n.Y < 0 || n.X >= w || n.Y >= h {
				continue
			}
			if visited[n.Y*w+n.X] || mask.Pix[n.Y*mask.Stride+n.X] == 0 {
				continue
			}
			visited[n.Y*w+n.X] = true
			stack = append(stack, n)
		}
	}
}

// boundingRect returns the smallest rectangle enclosing the contour
// points. A contour pixel at (x, y) occupies the unit cell [x, x+1) x
// [y, y+1), so the rectangle's width in pixels is maxX-minX+1.
func boundingRect(contour []image.Point) image.Rectangle {
	min, max := contour[0], contour[0]
	for _, p := range contour[1:] {
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
	}
	return image.Rect(min.X, min.Y, max.X+1, max.Y+1)
}

// contourArea computes the area enclosed by the contour polygon via the
// shoelace formula. This matches the usual contour-area convention: a
// filled 10x10 blob yields 81, not 100, because the polygon runs
// through pixel centers on the border.
func contourArea(contour []image.Point) float64 {
	if len(contour) < 3 {
		return 0
	}
	sum := 0
	for i, p := range contour {
		q := contour[(i+1)%len(contour)]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2
}
