// Package overlay detects and removes large dark rectangular overlays
// from rasterized PDF pages.
//
// Many source PDFs carry an opaque dark rectangle stamped over genuine
// content (a redaction-style overlay that should not survive
// conversion). This package finds such rectangles heuristically and
// clears them to white so the rest of the page converts faithfully.
//
// The detector is a pipeline of pure functions over explicit image
// buffers:
//
//	luminance -> inverted threshold -> morphological close -> open ->
//	external contours -> area filter -> shape filter -> white fill
//
// All thresholds are carried in [Config]; [DefaultConfig] returns the
// tuned defaults. Detection is deterministic for a given image and
// configuration.
//
// Basic usage:
//
//	removed := overlay.Remove(img, overlay.DefaultConfig())
//	if removed {
//	    // img was mutated in place; dark overlays are now white
//	}
package overlay
