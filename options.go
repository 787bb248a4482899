package wordify

import (
	"github.com/012arish/Wordify/contrast"
	"github.com/012arish/Wordify/overlay"
)

// Conversion defaults and limits.
const (
	// DefaultDPI is the rasterization resolution used when the caller
	// does not specify one.
	DefaultDPI = 300

	// MaxDPI is the hard resolution cap. Raster size grows
	// quadratically with DPI, so requests above this are silently
	// clamped to bound memory.
	MaxDPI = 400

	// DefaultPageWidthInches is the physical width every page image is
	// scaled to in the output document.
	DefaultPageWidthInches = 6.0
)

// convertOptions holds configuration for a conversion.
type convertOptions struct {
	dpi            int
	fixOverlay     bool
	pageWidth      float64
	workDir        string // empty means a private temp directory
	overlay        overlay.Config
	contrastFactor float64
}

// defaultOptions returns the default conversion options.
func defaultOptions() convertOptions {
	return convertOptions{
		dpi:            DefaultDPI,
		fixOverlay:     true,
		pageWidth:      DefaultPageWidthInches,
		workDir:        "",
		overlay:        overlay.DefaultConfig(),
		contrastFactor: contrast.DefaultFactor,
	}
}
